package usecase

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct{ mock.Mock }

func (m *MockStorage) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, objectName, contentType, data)
	return args.String(0), args.Error(1)
}

type MockHomeRepository struct{ mock.Mock }

func (m *MockHomeRepository) Create(ctx context.Context, home *domain.Home) error {
	args := m.Called(ctx, home)
	return args.Error(0)
}

func (m *MockHomeRepository) FindByID(ctx context.Context, id string) (*domain.Home, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Home), args.Error(1)
}

type MockHomeCache struct{ mock.Mock }

func (m *MockHomeCache) Get(ctx context.Context, id string) (*domain.Home, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Home), args.Error(1)
}

func (m *MockHomeCache) Set(ctx context.Context, home *domain.Home) error {
	args := m.Called(ctx, home)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishHomeCreated(ctx context.Context, home *domain.Home) error {
	args := m.Called(ctx, home)
	return args.Error(0)
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// HomeUsecase creates and reads homes. cache and publisher are optional.
type HomeUsecase struct {
	repo      domain.HomeRepository
	cache     domain.HomeCache
	publisher domain.EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
	now       func() time.Time
}

func NewHomeUsecase(repo domain.HomeRepository, cache domain.HomeCache, publisher domain.EventPublisher, m *metrics.MetricsManager, log *logger.Logger) *HomeUsecase {
	return &HomeUsecase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		metrics:   m,
		logger:    log.Named("HomeUsecase"),
		now:       time.Now,
	}
}

// CreateHome validates input and stores it. Validation failures are
// returned as *domain.ValidationError.
func (uc *HomeUsecase) CreateHome(ctx context.Context, input domain.NewHome) (*domain.Home, error) {
	ctx, span := tracer.Start(ctx, "HomeUsecase.CreateHome")
	defer span.End()

	input = input.Normalized()
	if fields := input.Validate(); fields != nil {
		uc.logger.Info("HomeUsecase.CreateHome: validation failed", zap.Any("fields", fields))
		return nil, &domain.ValidationError{Fields: fields}
	}

	now := uc.now().UTC()
	home := &domain.Home{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Guests:      input.Guests,
		Beds:        input.Beds,
		Baths:       input.Baths,
		Image:       input.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, home); err != nil {
		uc.logger.Error("HomeUsecase.CreateHome: failed to create home", zap.String("title", home.Title), zap.Error(err))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("home.id", home.ID))
	uc.metrics.ObserveHomeCreated()

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, home); err != nil {
			uc.logger.Warn("HomeUsecase.CreateHome: failed to cache home", zap.String("home_id", home.ID), zap.Error(err))
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishHomeCreated(ctx, home); err != nil {
			uc.logger.Warn("HomeUsecase.CreateHome: failed to publish event", zap.String("home_id", home.ID), zap.Error(err))
		}
	}

	uc.logger.Info("HomeUsecase.CreateHome: home created", zap.String("home_id", home.ID), zap.Bool("has_image", home.Image != ""))
	return home, nil
}

// GetHome reads through the cache. Missing homes return domain.ErrHomeNotFound.
func (uc *HomeUsecase) GetHome(ctx context.Context, id string) (*domain.Home, error) {
	ctx, span := tracer.Start(ctx, "HomeUsecase.GetHome")
	defer span.End()
	span.SetAttributes(attribute.String("home.id", id))

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.logger.Warn("HomeUsecase.GetHome: cache read failed", zap.String("home_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	home, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrHomeNotFound) {
			uc.logger.Error("HomeUsecase.GetHome: failed to find home", zap.String("home_id", id), zap.Error(err))
		}
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, home); err != nil {
			uc.logger.Warn("HomeUsecase.GetHome: failed to cache home", zap.String("home_id", id), zap.Error(err))
		}
	}
	return home, nil
}

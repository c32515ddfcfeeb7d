package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/usecase"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryStorage keeps uploaded objects in a map.
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memoryStorage) Upload(_ context.Context, objectName, contentType string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = append([]byte(nil), data...)
	s.types[objectName] = contentType
	return "http://storage.test/images/" + objectName, nil
}

type MockHomeService struct{ mock.Mock }

func (m *MockHomeService) CreateHome(ctx context.Context, input domain.NewHome) (*domain.Home, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Home), args.Error(1)
}

func (m *MockHomeService) GetHome(ctx context.Context, id string) (*domain.Home, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Home), args.Error(1)
}

func newTestRouter(storage domain.Storage, homes HomeService, maxBody int64) http.Handler {
	return newTestRouterWithHomeLimit(storage, homes, maxBody, 0)
}

func newTestRouterWithHomeLimit(storage domain.Storage, homes HomeService, maxBody, maxHomeBody int64) http.Handler {
	log := logger.NewNop()
	m := metrics.NewMetricsManager("test")
	images := NewImageHandler(usecase.NewImageUsecase(storage, "homes", m, log), maxBody, log)
	var hh *HomeHandler
	if homes != nil {
		hh = NewHomeHandler(homes, maxHomeBody, log)
	}
	return NewRouter(images, hh, m, log)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestImageUpload_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(newMemoryStorage(), nil, 0)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec, body := do(t, router, method, PathImageUpload, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "POST", rec.Header().Get("Allow"))
		assert.Equal(t, "HTTP method "+method+" is not supported.", body["message"])
	}
}

func TestImageUpload_NoImage(t *testing.T) {
	router := newTestRouter(newMemoryStorage(), nil, 0)

	for _, payload := range []string{`{}`, `{"image":""}`, `{"image":null}`} {
		rec, body := do(t, router, http.MethodPost, PathImageUpload, payload)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, payload)
		assert.Equal(t, MsgNoImage, body["message"], payload)
	}
}

func TestImageUpload_InvalidDataURL(t *testing.T) {
	storage := newMemoryStorage()
	router := newTestRouter(storage, nil, 0)

	rec, body := do(t, router, http.MethodPost, PathImageUpload, `{"image":"not-a-data-url"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgImageInvalid, body["message"])
	assert.Empty(t, storage.objects)
}

func TestImageUpload_StorageFailure(t *testing.T) {
	storage := newMemoryStorage()
	storage.err = errors.New("bucket does not exist")
	router := newTestRouter(storage, nil, 0)

	img := domain.EncodeDataURL("image/png", []byte{0x89, 'P', 'N', 'G'})
	rec, body := do(t, router, http.MethodPost, PathImageUpload, `{"image":"`+img+`"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgSomethingWrong, body["message"])
}

func TestImageUpload_StorageNotConfigured(t *testing.T) {
	storage := newMemoryStorage()
	storage.err = domain.ErrStorageNotConfigured
	router := newTestRouter(storage, nil, 0)

	img := domain.EncodeDataURL("image/png", []byte{1})
	rec, body := do(t, router, http.MethodPost, PathImageUpload, `{"image":"`+img+`"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgSomethingWrong, body["message"])
}

func TestImageUpload_RoundTrip(t *testing.T) {
	storage := newMemoryStorage()
	router := newTestRouter(storage, nil, 0)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	img := domain.EncodeDataURL("image/png", png)
	rec, body := do(t, router, http.MethodPost, PathImageUpload, `{"image":"`+img+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	url, _ := body["url"].(string)
	require.True(t, strings.HasPrefix(url, "http://storage.test/images/homes/"), url)
	require.True(t, strings.HasSuffix(url, ".png"), url)

	objectName := strings.TrimPrefix(url, "http://storage.test/images/")
	assert.Equal(t, png, storage.objects[objectName])
	assert.Equal(t, "image/png", storage.types[objectName])
}

func TestImageUpload_BodyLimits(t *testing.T) {
	router := newTestRouter(newMemoryStorage(), nil, 64)

	big := domain.EncodeDataURL("image/png", make([]byte, 256))
	rec, body := do(t, router, http.MethodPost, PathImageUpload, `{"image":"`+big+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, MsgBodyTooLarge, body["message"])

	rec, body = do(t, router, http.MethodPost, PathImageUpload, `{"image":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MsgInvalidBody, body["message"])
}

func TestHomes_Create(t *testing.T) {
	homes := new(MockHomeService)
	router := newTestRouter(newMemoryStorage(), homes, 0)

	input := domain.NewHome{Title: "Loft", Description: "Bright loft", Price: 120, Guests: 2, Beds: 1, Baths: 1}
	homes.On("CreateHome", mock.Anything, input).Return(&domain.Home{ID: "65f0", Title: "Loft", Price: 120}, nil).Once()

	rec, body := do(t, router, http.MethodPost, PathHomes,
		`{"title":"Loft","description":"Bright loft","price":120,"guests":2,"beds":1,"baths":1,"image":""}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "65f0", body["id"])
	homes.AssertExpectations(t)
}

func TestHomes_CreateValidationError(t *testing.T) {
	homes := new(MockHomeService)
	router := newTestRouter(newMemoryStorage(), homes, 0)

	homes.On("CreateHome", mock.Anything, mock.Anything).
		Return(nil, &domain.ValidationError{Fields: domain.FieldErrors{"price": "price must be greater than or equal to 1"}}).Once()

	rec, body := do(t, router, http.MethodPost, PathHomes, `{"title":"Loft","price":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MsgInvalidHome, body["message"])
	assert.Contains(t, body["errors"], "price")
}

func TestHomes_Get(t *testing.T) {
	homes := new(MockHomeService)
	router := newTestRouter(newMemoryStorage(), homes, 0)

	homes.On("GetHome", mock.Anything, "65f0").Return(&domain.Home{ID: "65f0", Title: "Loft"}, nil).Once()
	homes.On("GetHome", mock.Anything, "nope").Return(nil, domain.ErrHomeNotFound).Once()

	rec, body := do(t, router, http.MethodGet, PathHomes+"/65f0", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Loft", body["title"])

	rec, body = do(t, router, http.MethodGet, PathHomes+"/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, MsgHomeNotFound, body["message"])
}

func TestHomes_CreateBodyTooLarge(t *testing.T) {
	homes := new(MockHomeService)
	router := newTestRouterWithHomeLimit(newMemoryStorage(), homes, 0, 32)

	rec, body := do(t, router, http.MethodPost, PathHomes,
		`{"title":"Loft","description":"`+strings.Repeat("x", 64)+`","price":120}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, MsgBodyTooLarge, body["message"])
	homes.AssertNotCalled(t, "CreateHome", mock.Anything, mock.Anything)
}

func TestNewHomeHandler_DefaultBodyLimit(t *testing.T) {
	h := NewHomeHandler(new(MockHomeService), 0, logger.NewNop())
	assert.Equal(t, DefaultMaxHomeBodyBytes, h.maxBodyBytes)
}

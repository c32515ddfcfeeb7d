package usecase

import (
	"context"
	"fmt"
	"path"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/metrics"
	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("homes-service/usecase")

// ImageUsecase relays data-URL images to object storage.
type ImageUsecase struct {
	storage    domain.Storage
	pathPrefix string
	metrics    *metrics.MetricsManager
	logger     *logger.Logger
	newName    func() string
}

// NewImageUsecase writes objects under pathPrefix (may be empty). metrics may be nil.
func NewImageUsecase(storage domain.Storage, pathPrefix string, m *metrics.MetricsManager, log *logger.Logger) *ImageUsecase {
	return &ImageUsecase{
		storage:    storage,
		pathPrefix: pathPrefix,
		metrics:    m,
		logger:     log.Named("ImageUsecase"),
		newName:    func() string { return xid.New().String() },
	}
}

// Upload decodes image, stores it under a generated name and returns its
// public URL. Errors match domain.ErrImageNotProvided or
// domain.ErrImageDataInvalid for bad input; anything else is a storage failure.
func (uc *ImageUsecase) Upload(ctx context.Context, image string) (string, error) {
	ctx, span := tracer.Start(ctx, "ImageUsecase.Upload")
	defer span.End()

	if image == "" {
		uc.metrics.ObserveUpload(metrics.OutcomeBadInput, 0)
		return "", domain.ErrImageNotProvided
	}

	dataURL, err := domain.ParseDataURL(image)
	if err != nil {
		uc.logger.Warn("ImageUsecase.Upload: rejected image payload", zap.Int("payload_length", len(image)), zap.Error(err))
		uc.metrics.ObserveUpload(metrics.OutcomeBadInput, 0)
		return "", err
	}

	objectName := path.Join(uc.pathPrefix, uc.newName()+"."+dataURL.Extension())
	span.SetAttributes(
		attribute.String("storage.object", objectName),
		attribute.String("image.media_type", dataURL.MediaType),
		attribute.Int("image.size_bytes", len(dataURL.Data)),
	)

	url, err := uc.storage.Upload(ctx, objectName, dataURL.MediaType, dataURL.Data)
	if err != nil {
		uc.logger.Error("ImageUsecase.Upload: storage upload failed", zap.String("object", objectName), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage upload failed")
		uc.metrics.ObserveUpload(metrics.OutcomeStorageError, 0)
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}

	uc.metrics.ObserveUpload(metrics.OutcomeSuccess, len(dataURL.Data))
	uc.logger.Info("ImageUsecase.Upload: image stored",
		zap.String("object", objectName),
		zap.String("media_type", dataURL.MediaType),
		zap.Int("size_bytes", len(dataURL.Data)),
		zap.String("url", url))
	return url, nil
}

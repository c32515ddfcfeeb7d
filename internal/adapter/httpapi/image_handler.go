package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/logger"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes caps the relay request body.
const DefaultMaxBodyBytes int64 = 10 * 1024 * 1024

// ImageUploader is implemented by usecase.ImageUsecase.
type ImageUploader interface {
	Upload(ctx context.Context, image string) (string, error)
}

type ImageHandler struct {
	uploader     ImageUploader
	maxBodyBytes int64
	logger       *logger.Logger
}

func NewImageHandler(uploader ImageUploader, maxBodyBytes int64, log *logger.Logger) *ImageHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &ImageHandler{uploader: uploader, maxBodyBytes: maxBodyBytes, logger: log.Named("ImageHandler")}
}

type uploadRequest struct {
	Image *string `json:"image"`
}

// HandleUpload serves /api/image-upload for every method; only POST is accepted.
func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeMessage(w, http.StatusMethodNotAllowed, fmt.Sprintf(msgMethodNotAllowed, r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("ImageHandler.HandleUpload: request body too large", zap.Int64("limit_bytes", tooLarge.Limit))
			writeMessage(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			return
		}
		h.logger.Warn("ImageHandler.HandleUpload: invalid request body", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	image := ""
	if req.Image != nil {
		image = *req.Image
	}

	url, err := h.uploader.Upload(r.Context(), image)
	switch {
	case errors.Is(err, domain.ErrImageNotProvided):
		writeMessage(w, http.StatusInternalServerError, MsgNoImage)
	case errors.Is(err, domain.ErrImageDataInvalid):
		writeMessage(w, http.StatusInternalServerError, MsgImageInvalid)
	case err != nil:
		writeMessage(w, http.StatusInternalServerError, MsgSomethingWrong)
	default:
		writeJSON(w, http.StatusOK, uploadResponse{URL: url})
	}
}

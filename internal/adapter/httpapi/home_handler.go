package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HomeService is implemented by usecase.HomeUsecase.
type HomeService interface {
	CreateHome(ctx context.Context, input domain.NewHome) (*domain.Home, error)
	GetHome(ctx context.Context, id string) (*domain.Home, error)
}

// DefaultMaxHomeBodyBytes caps the POST /api/homes request body.
const DefaultMaxHomeBodyBytes int64 = 1 << 20

type HomeHandler struct {
	homes        HomeService
	maxBodyBytes int64
	logger       *logger.Logger
}

func NewHomeHandler(homes HomeService, maxBodyBytes int64, log *logger.Logger) *HomeHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxHomeBodyBytes
	}
	return &HomeHandler{homes: homes, maxBodyBytes: maxBodyBytes, logger: log.Named("HomeHandler")}
}

func (h *HomeHandler) HandleCreateHome(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	var req domain.NewHome
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("HomeHandler.HandleCreateHome: request body too large", zap.Int64("limit_bytes", tooLarge.Limit))
			writeMessage(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			return
		}
		h.logger.Warn("HomeHandler.HandleCreateHome: invalid request body", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	home, err := h.homes.CreateHome(r.Context(), req)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: MsgInvalidHome, Errors: vErr.Fields})
			return
		}
		writeMessage(w, http.StatusInternalServerError, MsgSomethingWrong)
		return
	}
	writeJSON(w, http.StatusCreated, home)
}

func (h *HomeHandler) HandleGetHome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	home, err := h.homes.GetHome(r.Context(), id)
	if errors.Is(err, domain.ErrHomeNotFound) {
		writeMessage(w, http.StatusNotFound, MsgHomeNotFound)
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, MsgSomethingWrong)
		return
	}
	writeJSON(w, http.StatusOK, home)
}

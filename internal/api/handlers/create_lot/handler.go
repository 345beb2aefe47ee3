package create_lot

import (
	"errors"
	"net/http"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/internal/service/catalog"
	"github.com/nash87/parkhub-sub000/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidLayout      = "некорректная схема парковки"
	msgAdminOnly          = "операция доступна только администратору"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/lots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if middleware.Role(r.Context()) != domain.RoleAdmin {
		h.logger.Warn("POST /lots - Access denied: user_id=%s", userID)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	var req models.CreateLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateLot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /lots - Invalid layout: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidLayout)

		default:
			h.logger.Error("POST /lots - Failed to create lot: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /lots - Lot created: lot_id=%s, user_id=%s", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

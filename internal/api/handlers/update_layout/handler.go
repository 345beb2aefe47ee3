package update_layout

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/internal/service/catalog"
	"github.com/nash87/parkhub-sub000/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidLayout      = "некорректная схема парковки"
	msgLotNotFound        = "парковка не найдена"
	msgSlotInUse          = "нельзя удалить место с действующими бронированиями"
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

// Handle PUT /api/v1/lots/{lotId}/layout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID := mux.Vars(r)["lotId"]
	userID := middleware.UserID(r.Context())

	if middleware.Role(r.Context()) != domain.RoleAdmin {
		h.logger.Warn("PUT /lots/{id}/layout - Access denied: lot_id=%s, user_id=%s", lotID, userID)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	var req models.UpdateLayoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /lots/{id}/layout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.LotID = lotID

	result, err := h.service.UpdateLayout(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrLotNotFound):
			h.logger.Warn("PUT /lots/{id}/layout - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, catalog.ErrSlotInUse):
			h.logger.Warn("PUT /lots/{id}/layout - Slot in use: lot_id=%s", lotID)
			handlers.RespondConflict(w, msgSlotInUse)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /lots/{id}/layout - Invalid layout: lot_id=%s, error=%v", lotID, err)
			handlers.RespondBadRequest(w, msgInvalidLayout)

		default:
			h.logger.Error("PUT /lots/{id}/layout - Failed to update layout: lot_id=%s, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /lots/{id}/layout - Layout updated: lot_id=%s, user_id=%s", lotID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

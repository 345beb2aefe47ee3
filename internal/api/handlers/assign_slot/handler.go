package assign_slot

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
	msgInvalidUser        = "некорректный идентификатор пользователя"
	msgSlotNotFound       = "парковочное место не найдено"
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

// Handle PATCH /api/v1/slots/{slotId}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]
	userID := middleware.UserID(r.Context())

	if middleware.Role(r.Context()) != domain.RoleAdmin {
		h.logger.Warn("PATCH /slots/{id}/assign - Access denied: slot_id=%s, user_id=%s", slotID, userID)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	var req models.AssignSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{id}/assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SlotID = slotID

	err := h.service.AssignSlot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/assign - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{id}/assign - Invalid user: slot_id=%s", slotID)
			handlers.RespondBadRequest(w, msgInvalidUser)

		default:
			h.logger.Error("PATCH /slots/{id}/assign - Failed to assign slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{id}/assign - Assignment updated: slot_id=%s, admin_id=%s", slotID, userID)
	handlers.RespondNoContent(w)
}

package set_slot_flag

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
	msgInvalidFlag        = "некорректный флаг, допустимы disabled и blocked"
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

// Handle PATCH /api/v1/slots/{slotId}/flags
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]
	userID := middleware.UserID(r.Context())

	if middleware.Role(r.Context()) != domain.RoleAdmin {
		h.logger.Warn("PATCH /slots/{id}/flags - Access denied: slot_id=%s, user_id=%s", slotID, userID)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	var req models.SetSlotFlagRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{id}/flags - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SlotID = slotID

	err := h.service.SetSlotFlag(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/flags - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{id}/flags - Invalid flag: slot_id=%s, flag=%s", slotID, req.Flag)
			handlers.RespondBadRequest(w, msgInvalidFlag)

		default:
			h.logger.Error("PATCH /slots/{id}/flags - Failed to set flag: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{id}/flags - Flag updated: slot_id=%s, flag=%s, value=%t, user_id=%s",
		slotID, req.Flag, req.Value, userID)
	handlers.RespondNoContent(w)
}

package withdraw_waitlist

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/service/waitlist"
)

const (
	msgEntryNotFound = "запись очереди ожидания не найдена"
	msgAccessDenied  = "нельзя удалить чужую запись очереди ожидания"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/waitlist/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["entryId"]
	userID := middleware.UserID(r.Context())

	err := h.service.Withdraw(r.Context(), userID, entryID)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("DELETE /waitlist/{id} - Entry not found: entry_id=%s", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, waitlist.ErrAccessDenied):
			h.logger.Warn("DELETE /waitlist/{id} - Access denied: entry_id=%s, user_id=%s", entryID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /waitlist/{id} - Failed to withdraw: entry_id=%s, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /waitlist/{id} - Withdrawn: entry_id=%s, user_id=%s", entryID, userID)
	handlers.RespondNoContent(w)
}

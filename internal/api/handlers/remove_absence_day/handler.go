package remove_absence_day

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/service/absences"
)

const msgDayNotFound = "день отсутствия не найден"

type Handler struct {
	service AbsenceService
	logger  Logger
}

func NewHandler(service AbsenceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/absences/days/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["entryId"]
	userID := middleware.UserID(r.Context())

	err := h.service.RemoveAbsenceDay(r.Context(), userID, entryID)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrDayNotFound):
			h.logger.Warn("DELETE /absences/days/{id} - Day not found: entry_id=%s, user_id=%s", entryID, userID)
			handlers.RespondNotFound(w, msgDayNotFound)

		default:
			h.logger.Error("DELETE /absences/days/{id} - Failed to remove day: entry_id=%s, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /absences/days/{id} - Day removed: entry_id=%s, user_id=%s", entryID, userID)
	handlers.RespondNoContent(w)
}

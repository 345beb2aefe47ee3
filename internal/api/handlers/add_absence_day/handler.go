package add_absence_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/internal/service/absences"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDay         = "некорректный формат дня, ожидается YYYY-MM-DD"
)

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

// AddDayRequest HTTP request model
type AddDayRequest struct {
	Day string `json:"day"` // "2025-10-15"
}

// AbsenceDayResponse HTTP response model
type AbsenceDayResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Day       string `json:"day"`
	CreatedAt string `json:"created_at"`
}

// Handle POST /api/v1/absences/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req AddDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /absences/days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	day, err := time.Parse(domain.DateFormat, req.Day)
	if err != nil {
		h.logger.Warn("POST /absences/days - Invalid day: %s", req.Day)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	entry, err := h.service.AddAbsenceDay(r.Context(), userID, day)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrInvalidInput):
			h.logger.Warn("POST /absences/days - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidDay)

		default:
			h.logger.Error("POST /absences/days - Failed to add day: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /absences/days - Day added: entry_id=%s, user_id=%s, day=%s",
		entry.ID, userID, req.Day)
	handlers.RespondJSON(w, http.StatusCreated, &AbsenceDayResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Day:       entry.Day.Format(domain.DateFormat),
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	})
}

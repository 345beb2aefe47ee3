package set_absence_pattern

import (
	"errors"
	"net/http"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/service/absences"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeekdays    = "некорректные дни недели, допустимы значения 0-6 (0 = понедельник)"
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

// SetPatternRequest HTTP request model
type SetPatternRequest struct {
	Weekdays []int `json:"weekdays"`
}

// SetPatternResponse HTTP response model
type SetPatternResponse struct {
	UserID   string `json:"user_id"`
	Weekdays []int  `json:"weekdays"`
}

// Handle PUT /api/v1/absences/pattern
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req SetPatternRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /absences/pattern - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	settings, err := h.service.SetWeeklyPattern(r.Context(), userID, req.Weekdays)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrInvalidInput):
			h.logger.Warn("PUT /absences/pattern - Invalid weekdays: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidWeekdays)

		default:
			h.logger.Error("PUT /absences/pattern - Failed to set pattern: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /absences/pattern - Pattern updated: user_id=%s, weekdays=%v", userID, settings.Weekdays)
	handlers.RespondJSON(w, http.StatusOK, &SetPatternResponse{
		UserID:   settings.UserID,
		Weekdays: settings.Weekdays,
	})
}

package get_absence_settings

import (
	"net/http"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/domain"
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

// AbsenceDayResponse явный день отсутствия
type AbsenceDayResponse struct {
	ID  string `json:"id"`
	Day string `json:"day"`
}

// SettingsResponse HTTP response model
type SettingsResponse struct {
	UserID   string               `json:"user_id"`
	Weekdays []int                `json:"weekdays"`
	Days     []AbsenceDayResponse `json:"days"`
}

// Handle GET /api/v1/absences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	settings, err := h.service.GetSettings(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /absences - Failed to get settings: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := &SettingsResponse{
		UserID:   userID,
		Weekdays: settings.Weekdays,
		Days:     make([]AbsenceDayResponse, 0, len(settings.Days)),
	}
	for _, day := range settings.Days {
		response.Days = append(response.Days, AbsenceDayResponse{
			ID:  day.ID,
			Day: day.Day.Format(domain.DateFormat),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

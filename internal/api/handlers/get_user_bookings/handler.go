package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/internal/service/bookings"
	"github.com/nash87/parkhub-sub000/internal/service/bookings/models"
)

const (
	msgInvalidStatus = "некорректный статус, допустимы active, completed, cancelled"
	msgAccessDenied  = "нет доступа к бронированиям другого пользователя"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	targetUserID := mux.Vars(r)["userId"]
	requesterID := middleware.UserID(r.Context())
	role := middleware.Role(r.Context())

	// Историю другого пользователя видит только администратор
	if targetUserID != requesterID && role != domain.RoleAdmin {
		h.logger.Warn("GET /users/{id}/bookings - Access denied: target=%s, requester=%s", targetUserID, requesterID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetUserBookingsRequest{UserID: targetUserID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetUserBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/bookings - Invalid status filter: user_id=%s", targetUserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/bookings - Failed to get bookings: user_id=%s, error=%v", targetUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package join_waitlist

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/internal/service/waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDay         = "некорректный формат дня, ожидается YYYY-MM-DD"
	msgSlotNotFound       = "парковочное место не найдено"
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

// JoinWaitlistRequest HTTP request model
type JoinWaitlistRequest struct {
	Day string `json:"day"` // "2025-10-15"
}

// WaitlistEntryResponse HTTP response model
type WaitlistEntryResponse struct {
	ID        string `json:"id"`
	SlotID    string `json:"slot_id"`
	UserID    string `json:"user_id"`
	Day       string `json:"day"`
	Notified  bool   `json:"notified"`
	CreatedAt string `json:"created_at"`
}

// Handle POST /api/v1/slots/{slotId}/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]
	userID := middleware.UserID(r.Context())

	var req JoinWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{id}/waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	day, err := time.Parse(domain.DateFormat, req.Day)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/waitlist - Invalid day: %s", req.Day)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	entry, err := h.service.Join(r.Context(), userID, slotID, day)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/waitlist - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("POST /slots/{id}/waitlist - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidDay)

		default:
			h.logger.Error("POST /slots/{id}/waitlist - Failed to join: slot_id=%s, user_id=%s, error=%v",
				slotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/waitlist - Joined: entry_id=%s, slot_id=%s, user_id=%s",
		entry.ID, slotID, userID)
	handlers.RespondJSON(w, http.StatusCreated, &WaitlistEntryResponse{
		ID:        entry.ID,
		SlotID:    entry.SlotID,
		UserID:    entry.UserID,
		Day:       entry.Day.Format(domain.DateFormat),
		Notified:  entry.Notified,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	})
}

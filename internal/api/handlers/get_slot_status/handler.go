package get_slot_status

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	resolveStatus "github.com/nash87/parkhub-sub000/internal/usecase/resolve_slot_status"
)

const (
	msgSlotNotFound = "парковочное место не найдено"
	msgInvalidAt    = "некорректный параметр at, ожидается RFC 3339"
)

type Handler struct {
	useCase ResolveStatusUseCase
	logger  Logger
}

func NewHandler(useCase ResolveStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// SlotStatusResponse HTTP response model
type SlotStatusResponse struct {
	SlotID         string  `json:"slot_id"`
	Label          string  `json:"label"`
	Status         string  `json:"status"`
	AssignedUserID *string `json:"assigned_user_id,omitempty"`
}

// Handle GET /api/v1/slots/{slotId}/status?at=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]
	viewerID := middleware.UserID(r.Context())

	var at time.Time
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /slots/{id}/status - Invalid at parameter: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidAt)
			return
		}
		at = parsed
	}

	result, err := h.useCase.ResolveSlot(r.Context(), &resolveStatus.SlotRequest{
		SlotID:   slotID,
		At:       at,
		ViewerID: viewerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolveStatus.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{id}/status - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("GET /slots/{id}/status - Failed to resolve status: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &SlotStatusResponse{
		SlotID:         result.SlotID,
		Label:          result.Label,
		Status:         string(result.Status),
		AssignedUserID: result.AssignedUserID,
	})
}

package get_lot_grid

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
	msgLotNotFound = "парковка не найдена"
	msgInvalidAt   = "некорректный параметр at, ожидается RFC 3339"
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

// GridSlotResponse статус одного места в сетке
type GridSlotResponse struct {
	SlotID         string  `json:"slot_id"`
	RowID          string  `json:"row_id"`
	Label          string  `json:"label"`
	Position       int     `json:"position"`
	Status         string  `json:"status"`
	AssignedUserID *string `json:"assigned_user_id,omitempty"`
}

// GridResponse HTTP response model
type GridResponse struct {
	LotID   string             `json:"lot_id"`
	LotName string             `json:"lot_name"`
	At      string             `json:"at"`
	Slots   []GridSlotResponse `json:"slots"`
}

// Handle GET /api/v1/lots/{lotId}/grid?at=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID := mux.Vars(r)["lotId"]
	viewerID := middleware.UserID(r.Context())

	var at time.Time
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /lots/{id}/grid - Invalid at parameter: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidAt)
			return
		}
		at = parsed
	}

	result, err := h.useCase.ResolveGrid(r.Context(), &resolveStatus.GridRequest{
		LotID:    lotID,
		At:       at,
		ViewerID: viewerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolveStatus.ErrLotNotFound):
			h.logger.Warn("GET /lots/{id}/grid - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		default:
			h.logger.Error("GET /lots/{id}/grid - Failed to resolve grid: lot_id=%s, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &GridResponse{
		LotID:   result.LotID,
		LotName: result.LotName,
		At:      result.At.Format(time.RFC3339),
		Slots:   make([]GridSlotResponse, len(result.Slots)),
	}
	for i, slot := range result.Slots {
		response.Slots[i] = GridSlotResponse{
			SlotID:         slot.SlotID,
			RowID:          slot.RowID,
			Label:          slot.Label,
			Position:       slot.Position,
			Status:         string(slot.Status),
			AssignedUserID: slot.AssignedUserID,
		}
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

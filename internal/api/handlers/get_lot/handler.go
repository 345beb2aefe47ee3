package get_lot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/service/catalog"
)

const msgLotNotFound = "парковка не найдена"

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

// Handle GET /api/v1/lots/{lotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID := mux.Vars(r)["lotId"]

	result, err := h.service.GetLot(r.Context(), lotID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrLotNotFound):
			h.logger.Warn("GET /lots/{id} - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		default:
			h.logger.Error("GET /lots/{id} - Failed to get lot: lot_id=%s, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

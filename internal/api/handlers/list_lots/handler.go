package list_lots

import (
	"net/http"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
)

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

// Handle GET /api/v1/lots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListLots(r.Context())
	if err != nil {
		h.logger.Error("GET /lots - Failed to list lots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package delete_lot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nash87/parkhub-sub000/internal/api/handlers"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/internal/service/catalog"
)

const (
	msgLotNotFound = "парковка не найдена"
	msgAdminOnly   = "операция доступна только администратору"
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

// Handle DELETE /api/v1/lots/{lotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID := mux.Vars(r)["lotId"]
	userID := middleware.UserID(r.Context())

	if middleware.Role(r.Context()) != domain.RoleAdmin {
		h.logger.Warn("DELETE /lots/{id} - Access denied: lot_id=%s, user_id=%s", lotID, userID)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	err := h.service.DeleteLot(r.Context(), lotID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrLotNotFound):
			h.logger.Warn("DELETE /lots/{id} - Lot not found: lot_id=%s", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		default:
			h.logger.Error("DELETE /lots/{id} - Failed to delete lot: lot_id=%s, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /lots/{id} - Lot deleted: lot_id=%s, user_id=%s", lotID, userID)
	handlers.RespondNoContent(w)
}

package assign_slot

import (
	"context"

	"github.com/nash87/parkhub-sub000/internal/service/catalog/models"
)

type CatalogService interface {
	AssignSlot(ctx context.Context, req *models.AssignSlotRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package set_slot_flag

import (
	"context"

	"github.com/nash87/parkhub-sub000/internal/service/catalog/models"
)

type CatalogService interface {
	SetSlotFlag(ctx context.Context, req *models.SetSlotFlagRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

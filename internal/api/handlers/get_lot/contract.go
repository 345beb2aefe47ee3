package get_lot

import (
	"context"

	"github.com/nash87/parkhub-sub000/internal/service/catalog/models"
)

type CatalogService interface {
	GetLot(ctx context.Context, lotID string) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package list_lots

import (
	"context"

	"github.com/nash87/parkhub-sub000/internal/service/catalog/models"
)

type CatalogService interface {
	ListLots(ctx context.Context) (*models.LotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package delete_lot

import "context"

type CatalogService interface {
	DeleteLot(ctx context.Context, lotID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

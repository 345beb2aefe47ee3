package get_lot_grid

import (
	"context"

	resolveStatus "github.com/nash87/parkhub-sub000/internal/usecase/resolve_slot_status"
)

type ResolveStatusUseCase interface {
	ResolveGrid(ctx context.Context, req *resolveStatus.GridRequest) (*resolveStatus.GridResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

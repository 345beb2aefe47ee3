package get_slot_status

import (
	"context"

	resolveStatus "github.com/nash87/parkhub-sub000/internal/usecase/resolve_slot_status"
)

type ResolveStatusUseCase interface {
	ResolveSlot(ctx context.Context, req *resolveStatus.SlotRequest) (*resolveStatus.SlotStatus, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package join_waitlist

import (
	"context"
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

type WaitlistService interface {
	Join(ctx context.Context, userID, slotID string, day time.Time) (*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package add_absence_day

import (
	"context"
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

type AbsenceService interface {
	AddAbsenceDay(ctx context.Context, userID string, day time.Time) (*domain.AbsenceDay, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

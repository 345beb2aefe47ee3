package set_absence_pattern

import (
	"context"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

type AbsenceService interface {
	SetWeeklyPattern(ctx context.Context, userID string, weekdays []int) (*domain.AbsenceSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

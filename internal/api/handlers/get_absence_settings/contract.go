package get_absence_settings

import (
	"context"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

type AbsenceService interface {
	GetSettings(ctx context.Context, userID string) (*domain.AbsenceSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

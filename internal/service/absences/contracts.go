package absences

import (
	"context"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	GetSettings(ctx context.Context, userID string) (*domain.AbsenceSettings, error)
	UpsertPattern(ctx context.Context, userID string, weekdays []int) error
	AddDay(ctx context.Context, d *domain.AbsenceDay) (*domain.AbsenceDay, error)
	RemoveDay(ctx context.Context, userID, entryID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

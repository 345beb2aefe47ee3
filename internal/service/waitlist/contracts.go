package waitlist

import (
	"context"
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// WaitlistRepository интерфейс репозитория очереди ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, id string) (*domain.WaitlistEntry, error)
	GetBySlotAndDay(ctx context.Context, slotID string, day time.Time) ([]*domain.WaitlistEntry, error)
	MarkNotified(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, day time.Time) (int64, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetSlotByID(ctx context.Context, slotID string) (*domain.ParkingSlot, error)
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	Notify(ctx context.Context, userID string, message string) error
}

// MetricsRecorder интерфейс для записи бизнес-метрик
type MetricsRecorder interface {
	RecordWaitlistNotification()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

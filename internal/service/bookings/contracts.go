package bookings

import (
	"context"
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetExpiredActive(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Cancel(ctx context.Context, id string, at time.Time) error
}

// WaitlistNotifier уведомляет очередь ожидания об освободившихся днях места
type WaitlistNotifier interface {
	ScanAndNotify(ctx context.Context, slotID string, day time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder интерфейс для записи бизнес-метрик
type MetricsRecorder interface {
	RecordBookingEvent(event string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package resolve_slot_status

import (
	"context"
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveBySlot(ctx context.Context, slotID string) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetSlotByID(ctx context.Context, slotID string) (*domain.ParkingSlot, error)
	GetSlotsByLot(ctx context.Context, lotID string) ([]*domain.ParkingSlot, error)
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetNameByID(ctx context.Context, lotID string) (string, error)
}

// AbsenceReader интерфейс для проверки отсутствия владельца места
type AbsenceReader interface {
	IsAway(ctx context.Context, userID string, day time.Time) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
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

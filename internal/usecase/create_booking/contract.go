package create_booking

import (
	"context"

	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/internal/integrations/vehicleservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveBySlot(ctx context.Context, slotID string) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetSlotByID(ctx context.Context, slotID string) (*domain.ParkingSlot, error)
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetNameByID(ctx context.Context, lotID string) (string, error)
}

// VehicleServiceClient интерфейс клиента реестра транспорта
type VehicleServiceClient interface {
	GetVehicleWithGracefulDegradation(ctx context.Context, vehicleID string) (*vehicleservice.Vehicle, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder интерфейс для записи бизнес-метрик
type MetricsRecorder interface {
	RecordBookingEvent(event string)
}

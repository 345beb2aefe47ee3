package catalog

import (
	"context"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error)
	GetByID(ctx context.Context, id string) (*domain.ParkingLot, error)
	List(ctx context.Context) ([]*domain.ParkingLot, error)
	ReplaceLayout(ctx context.Context, lot *domain.ParkingLot) error
	Delete(ctx context.Context, lotID string) error
	GetSlotIDs(ctx context.Context, lotID string) ([]string, error)
	GetSlotByID(ctx context.Context, slotID string) (*domain.ParkingSlot, error)
	SetSlotFlag(ctx context.Context, slotID string, flag domain.SlotFlag, value bool) error
	SetSlotAssignedUser(ctx context.Context, slotID string, userID *string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetSlotIDsInUse(ctx context.Context, slotIDs []string) ([]string, error)
	DeleteByLot(ctx context.Context, lotID string) (int64, error)
}

// WaitlistRepository интерфейс репозитория очереди ожидания
type WaitlistRepository interface {
	DeleteByLot(ctx context.Context, lotID string) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

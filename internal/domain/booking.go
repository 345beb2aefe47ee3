package domain

import "time"

// BookingKind вид бронирования
type BookingKind string

const (
	KindOneTime   BookingKind = "one_time"
	KindMultiDay  BookingKind = "multi_day"
	KindPermanent BookingKind = "permanent"
)

// DauerInterval интервал повторения постоянного бронирования
type DauerInterval string

const (
	DauerWeekly  DauerInterval = "weekly"
	DauerMonthly DauerInterval = "monthly"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a parking slot claim in the system.
//
// Для kind = one_time / multi_day занятый интервал хранится напрямую как
// [StartTime, EndTime). Для kind = permanent интервал выводится из
// DauerInterval и Weekdays на момент чтения (см. internal/occupancy):
// записи-потомки на каждый день не материализуются.
type Booking struct {
	ID     string
	SlotID string
	LotID  string
	UserID string

	Kind          BookingKind
	DauerInterval *DauerInterval // только для permanent
	Weekdays      []int          // только для permanent weekly, 0 = понедельник
	StartTime     time.Time
	EndTime       *time.Time // nil для permanent

	Status BookingStatus

	// Denormalized data for history
	LotName      string
	SlotLabel    string
	VehiclePlate *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking still claims its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsPermanent returns true for open-ended recurring bookings
func (b *Booking) IsPermanent() bool {
	return b.Kind == KindPermanent
}

// CanBeCancelled returns true if the booking can be cancelled.
// Переходы из completed/cancelled запрещены.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusActive
}

// CanExpire returns true if the booking is subject to the time-driven
// completion sweep. Permanent bookings never auto-complete.
func (b *Booking) CanExpire() bool {
	return b.Status == StatusActive && b.Kind != KindPermanent && b.EndTime != nil
}

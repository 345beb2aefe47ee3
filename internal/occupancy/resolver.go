package occupancy

import (
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// Status статус слота, выведенный на момент времени
type Status string

const (
	StatusDisabled   Status = "disabled"
	StatusBlocked    Status = "blocked"
	StatusOccupied   Status = "occupied"
	StatusReserved   Status = "reserved"
	StatusHomeoffice Status = "homeoffice"
	StatusAvailable  Status = "available"
)

// Resolve вычисляет статус слота на момент at.
//
// Порядок (первое совпадение выигрывает, административные флаги всегда
// доминируют):
//  1. slot.Disabled -> disabled
//  2. slot.Blocked -> blocked
//  3. активное бронирование занимает at: своё бронирование со стартом в
//     будущем относительно now -> reserved, иначе -> occupied
//  4. слот закреплен за пользователем и тот отсутствует в эту дату
//     (ownerAway) -> homeoffice
//  5. available
//
// bookings — активные бронирования слота; ownerAway — результат
// AbsenceLedger.IsAway для владельца слота на дату at (false, если слот
// ни за кем не закреплен). viewerID — пользователь, для которого
// рендерится статус.
func Resolve(
	slot *domain.ParkingSlot,
	bookings []*domain.Booking,
	ownerAway bool,
	at time.Time,
	now time.Time,
	viewerID string,
) Status {
	if slot.Disabled {
		return StatusDisabled
	}
	if slot.Blocked {
		return StatusBlocked
	}

	var claim *domain.Booking
	for _, b := range bookings {
		if !b.IsActive() || !OccupiesInstant(b, at) {
			continue
		}
		claim = b
		// собственное бронирование предпочтительнее для отображения reserved
		if b.UserID == viewerID {
			break
		}
	}

	if claim != nil {
		if claim.UserID == viewerID && claim.StartTime.After(now) {
			return StatusReserved
		}
		return StatusOccupied
	}

	if ownerAway && slot.AssignedUserID != nil {
		return StatusHomeoffice
	}

	return StatusAvailable
}

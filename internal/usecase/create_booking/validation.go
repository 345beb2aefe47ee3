package create_booking

import (
	"fmt"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// validateRequest валидирует форму запроса в зависимости от типа бронирования
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.SlotID == "" {
		return fmt.Errorf("%w: slotID is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	switch req.Kind {
	case domain.KindOneTime, domain.KindMultiDay:
		return validateFiniteBooking(req)
	case domain.KindPermanent:
		return validatePermanentBooking(req)
	default:
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.Kind)
	}
}

// validateFiniteBooking проверяет форму конечного бронирования (one_time и multi_day)
func validateFiniteBooking(req *Request) error {
	if req.EndTime == nil {
		return fmt.Errorf("%w: endTime is required for %s booking", ErrInvalidInput, req.Kind)
	}

	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if req.DauerInterval != nil {
		return fmt.Errorf("%w: dauerInterval is not allowed for %s booking", ErrInvalidInput, req.Kind)
	}

	if len(req.Weekdays) > 0 {
		return fmt.Errorf("%w: weekdays are not allowed for %s booking", ErrInvalidInput, req.Kind)
	}

	if req.Kind == domain.KindOneTime && !domain.SameDay(req.StartTime, *req.EndTime) {
		return fmt.Errorf("%w: one_time booking must start and end on the same day", ErrInvalidInput)
	}

	return nil
}

// validatePermanentBooking проверяет форму постоянного бронирования
func validatePermanentBooking(req *Request) error {
	if req.EndTime != nil {
		return fmt.Errorf("%w: endTime is not allowed for permanent booking", ErrInvalidInput)
	}

	if req.DauerInterval == nil {
		return fmt.Errorf("%w: dauerInterval is required for permanent booking", ErrInvalidInput)
	}

	switch *req.DauerInterval {
	case domain.DauerMonthly:
		if len(req.Weekdays) > 0 {
			return fmt.Errorf("%w: weekdays are not allowed for monthly permanent booking", ErrInvalidInput)
		}
	case domain.DauerWeekly:
		if len(req.Weekdays) == 0 {
			return fmt.Errorf("%w: weekdays are required for weekly permanent booking", ErrInvalidInput)
		}
		seen := make(map[int]bool, len(req.Weekdays))
		for _, wd := range req.Weekdays {
			if !domain.ValidWeekday(wd) {
				return fmt.Errorf("%w: weekday %d is out of range [%d, %d]", ErrInvalidInput, wd, domain.MinWeekday, domain.MaxWeekday)
			}
			if seen[wd] {
				return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, wd)
			}
			seen[wd] = true
		}
	default:
		return fmt.Errorf("%w: unknown dauerInterval %q", ErrInvalidInput, *req.DauerInterval)
	}

	return nil
}

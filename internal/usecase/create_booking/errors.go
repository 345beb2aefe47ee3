package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда парковочное место не найдено
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotUnavailable возвращается, когда место отключено или заблокировано администратором
	ErrSlotUnavailable = errors.New("create_booking: slot is administratively unavailable")

	// ErrSlotConflict возвращается, когда место уже занято другим пользователем
	ErrSlotConflict = errors.New("create_booking: slot is already booked by another user")

	// ErrDuplicateBooking возвращается, когда пользователь уже забронировал это место на пересекающийся период
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking for the same slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

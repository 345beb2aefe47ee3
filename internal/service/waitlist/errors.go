package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись очереди не найдена
	ErrEntryNotFound = errors.New("waitlist entry not found")

	// ErrSlotNotFound возвращается, когда место не найдено
	ErrSlotNotFound = errors.New("slot not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

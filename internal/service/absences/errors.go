package absences

import "errors"

var (
	// ErrDayNotFound возвращается, когда явный день отсутствия не найден
	ErrDayNotFound = errors.New("absence day not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

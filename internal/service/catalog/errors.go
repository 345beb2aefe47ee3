package catalog

import "errors"

var (
	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("lot not found")

	// ErrSlotNotFound возвращается, когда место не найдено
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotInUse возвращается при попытке удалить место с неотмененными бронированиями
	ErrSlotInUse = errors.New("slot has non-cancelled bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

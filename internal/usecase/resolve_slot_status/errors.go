package resolve_slot_status

import "errors"

var (
	// ErrSlotNotFound возвращается, когда парковочное место не найдено
	ErrSlotNotFound = errors.New("resolve_slot_status: slot not found")

	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("resolve_slot_status: lot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_slot_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_slot_status: internal error")
)

package vehicleservice

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда транспорт не найден в реестре
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("vehicleservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("vehicleservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что реестр недоступен и бронирование создается без
	// отображаемого номера.
	ErrServiceDegraded = errors.New("vehicleservice unavailable: graceful degradation applied")
)

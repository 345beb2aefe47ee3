package absence

import "errors"

var (
	// ErrDayNotFound возвращается, когда явная дата отсутствия не найдена
	ErrDayNotFound = errors.New("absence.repository: absence day not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("absence.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("absence.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("absence.repository: failed to scan row")
)

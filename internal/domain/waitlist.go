package domain

import "time"

// WaitlistEntry запись листа ожидания на (слот, дата).
// Порядок уведомления — FIFO по CreatedAt. Notified означает, что
// пользователю отправлено "slot now free"; запись при этом не удаляется —
// бронирование после уведомления проходит обычную проверку конфликтов.
type WaitlistEntry struct {
	ID        string
	SlotID    string
	UserID    string
	Day       time.Time // полночь UTC
	Notified  bool
	CreatedAt time.Time
}

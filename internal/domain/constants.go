package domain

import "time"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Weekday bounds, 0 = Monday .. 6 = Sunday
const (
	MinWeekday = 0
	MaxWeekday = 6
)

// User roles supplied by the identity collaborator
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// WeekdayIndex возвращает номер дня недели с понедельником = 0
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ValidWeekday проверяет, что номер дня недели в допустимом диапазоне
func ValidWeekday(d int) bool {
	return d >= MinWeekday && d <= MaxWeekday
}

// StartOfDay обнуляет время, оставляя только дату (UTC)
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.UTC().Date()
	y2, m2, d2 := b.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

package domain

import "time"

// AbsenceSettings настройки отсутствий пользователя (homeoffice).
//
// Пользователь отсутствует в дату D, если weekday(D) входит в Weekdays ИЛИ
// D есть в явном списке Days. Приоритета между источниками нет, end date
// у паттерна нет — он оценивается относительно запрошенной даты при чтении.
type AbsenceSettings struct {
	UserID    string
	Weekdays  []int // 0 = понедельник .. 6 = воскресенье
	Days      []AbsenceDay
	UpdatedAt time.Time
}

// AbsenceDay явная разовая дата отсутствия
type AbsenceDay struct {
	ID        string
	UserID    string
	Day       time.Time // полночь UTC
	CreatedAt time.Time
}

// IsAway returns true if the user is away on the given date
func (s *AbsenceSettings) IsAway(day time.Time) bool {
	wd := WeekdayIndex(day)
	for _, w := range s.Weekdays {
		if w == wd {
			return true
		}
	}
	for _, d := range s.Days {
		if SameDay(d.Day, day) {
			return true
		}
	}
	return false
}

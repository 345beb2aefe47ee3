// Package occupancy реализует чистую резолюцию занятости слота:
// вывод занятых интервалов бронирования по его виду и вычисление статуса
// слота на момент времени. Никаких побочных эффектов; "сейчас" всегда
// передается параметром.
package occupancy

import (
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// Занятый интервал бронирования по виду:
//
//   - one_time / multi_day: [StartTime, EndTime), как хранится.
//   - permanent weekly: каждый календарный день на/после StartTime, чей
//     день недели входит в Weekdays, как [day 00:00, day+1 00:00).
//   - permanent monthly: каждый день на/после StartTime в том же смысле
//     (интервал "monthly" занимает слот ежедневно до отмены).

// OccupiesInstant reports whether the booking's occupied interval covers
// the given instant.
func OccupiesInstant(b *domain.Booking, at time.Time) bool {
	if !b.IsPermanent() {
		if b.EndTime == nil {
			return false
		}
		return !at.Before(b.StartTime) && at.Before(*b.EndTime)
	}

	if at.Before(domain.StartOfDay(b.StartTime)) {
		return false
	}
	if b.DauerInterval != nil && *b.DauerInterval == domain.DauerMonthly {
		return true
	}
	return containsWeekday(b.Weekdays, domain.WeekdayIndex(at))
}

// OccupiesRange reports whether the booking's occupied interval intersects
// the half-open interval [start, end).
func OccupiesRange(b *domain.Booking, start, end time.Time) bool {
	if !end.After(start) {
		return false
	}

	if !b.IsPermanent() {
		if b.EndTime == nil {
			return false
		}
		return b.StartTime.Before(end) && b.EndTime.After(start)
	}

	permStart := domain.StartOfDay(b.StartTime)
	if !end.After(permStart) {
		return false
	}
	if b.DauerInterval != nil && *b.DauerInterval == domain.DauerMonthly {
		return true
	}

	// weekly: перебираем дни запрошенного интервала, начиная не раньше
	// старта бронирования; интервал конечный, перебор ограничен
	day := domain.StartOfDay(start)
	if day.Before(permStart) {
		day = permStart
	}
	for day.Before(end) {
		if containsWeekday(b.Weekdays, domain.WeekdayIndex(day)) {
			next := day.AddDate(0, 0, 1)
			if day.Before(end) && next.After(start) {
				return true
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return false
}

// Overlap reports whether two bookings' occupied intervals intersect
// anywhere. Used by the conflict engine: candidate vs existing.
func Overlap(a, b *domain.Booking) bool {
	switch {
	case !a.IsPermanent() && !b.IsPermanent():
		if a.EndTime == nil || b.EndTime == nil {
			return false
		}
		return a.StartTime.Before(*b.EndTime) && b.StartTime.Before(*a.EndTime)

	case a.IsPermanent() && !b.IsPermanent():
		return OccupiesRange(a, b.StartTime, *b.EndTime)

	case !a.IsPermanent() && b.IsPermanent():
		return OccupiesRange(b, a.StartTime, *a.EndTime)
	}

	// Оба permanent: интервалы неограничены вперед, поэтому monthly
	// пересекается с чем угодно, а weekly-weekly — при общем дне недели.
	if isMonthly(a) || isMonthly(b) {
		return true
	}
	for _, w := range a.Weekdays {
		if containsWeekday(b.Weekdays, w) {
			return true
		}
	}
	return false
}

// OccupiedDays возвращает календарные дни из [from, until), в которые
// бронирование занимает слот. Используется для сканирования листа ожидания
// по освободившимся датам.
func OccupiedDays(b *domain.Booking, from, until time.Time) []time.Time {
	var days []time.Time
	day := domain.StartOfDay(from)
	for day.Before(until) {
		next := day.AddDate(0, 0, 1)
		if OccupiesRange(b, day, next) {
			days = append(days, day)
		}
		day = next
	}
	return days
}

func containsWeekday(set []int, wd int) bool {
	for _, w := range set {
		if w == wd {
			return true
		}
	}
	return false
}

func isMonthly(b *domain.Booking) bool {
	return b.DauerInterval != nil && *b.DauerInterval == domain.DauerMonthly
}

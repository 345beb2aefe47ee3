package occupancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// 2025-10-13 is a Monday.
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour int) time.Time {
	return day.Add(time.Duration(hour) * time.Hour)
}

func oneTime(userID string, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		UserID:    userID,
		Kind:      domain.KindOneTime,
		StartTime: start,
		EndTime:   &end,
		Status:    domain.StatusActive,
	}
}

func multiDay(userID string, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		UserID:    userID,
		Kind:      domain.KindMultiDay,
		StartTime: start,
		EndTime:   &end,
		Status:    domain.StatusActive,
	}
}

func permWeekly(userID string, start time.Time, weekdays ...int) *domain.Booking {
	interval := domain.DauerWeekly
	return &domain.Booking{
		UserID:        userID,
		Kind:          domain.KindPermanent,
		DauerInterval: &interval,
		Weekdays:      weekdays,
		StartTime:     start,
		Status:        domain.StatusActive,
	}
}

func permMonthly(userID string, start time.Time) *domain.Booking {
	interval := domain.DauerMonthly
	return &domain.Booking{
		UserID:        userID,
		Kind:          domain.KindPermanent,
		DauerInterval: &interval,
		StartTime:     start,
		Status:        domain.StatusActive,
	}
}

func TestOccupiesInstant_OneTime(t *testing.T) {
	b := oneTime("u1", at(monday, 9), at(monday, 17))

	assert.False(t, OccupiesInstant(b, at(monday, 8)))
	assert.True(t, OccupiesInstant(b, at(monday, 9)))
	assert.True(t, OccupiesInstant(b, at(monday, 12)))
	// правая граница не включается
	assert.False(t, OccupiesInstant(b, at(monday, 17)))
}

func TestOccupiesInstant_PermanentWeekly(t *testing.T) {
	// понедельник и среда
	b := permWeekly("u1", at(monday, 10), 0, 2)

	wednesday := monday.AddDate(0, 0, 2)
	tuesday := monday.AddDate(0, 0, 1)

	// день старта занят целиком, даже до времени старта
	assert.True(t, OccupiesInstant(b, at(monday, 8)))
	assert.True(t, OccupiesInstant(b, at(wednesday, 23)))
	assert.False(t, OccupiesInstant(b, at(tuesday, 12)))

	// до дня старта бронирование ничего не занимает
	prevWednesday := monday.AddDate(0, 0, -5)
	assert.False(t, OccupiesInstant(b, at(prevWednesday, 12)))
}

func TestOccupiesInstant_PermanentMonthly(t *testing.T) {
	b := permMonthly("u1", monday)

	assert.True(t, OccupiesInstant(b, at(monday, 0)))
	assert.True(t, OccupiesInstant(b, at(monday.AddDate(0, 2, 17), 13)))
	assert.False(t, OccupiesInstant(b, monday.Add(-time.Hour)))
}

func TestOverlap_FiniteVsFinite(t *testing.T) {
	a := oneTime("u1", at(monday, 9), at(monday, 17))

	assert.True(t, Overlap(a, oneTime("u2", at(monday, 16), at(monday, 18))))
	assert.True(t, Overlap(a, multiDay("u2", monday, monday.AddDate(0, 0, 3))))
	// встык не пересекаются
	assert.False(t, Overlap(a, oneTime("u2", at(monday, 17), at(monday, 20))))
	assert.False(t, Overlap(a, oneTime("u2", at(monday.AddDate(0, 0, 1), 9), at(monday.AddDate(0, 0, 1), 17))))
}

func TestOverlap_WeeklyVsFinite(t *testing.T) {
	// постоянное бронирование по понедельникам и средам
	perm := permWeekly("u1", monday, 0, 2)

	tuesday := monday.AddDate(0, 0, 1)
	wednesday := monday.AddDate(0, 0, 2)

	// разовая заявка на следующую среду конфликтует
	assert.True(t, Overlap(perm, oneTime("u2", at(wednesday, 9), at(wednesday, 17))))
	assert.True(t, Overlap(oneTime("u2", at(wednesday, 9), at(wednesday, 17)), perm))

	// вторник свободен
	assert.False(t, Overlap(perm, oneTime("u2", at(tuesday, 9), at(tuesday, 17))))

	// multi_day через вторник и среду задевает среду
	assert.True(t, Overlap(perm, multiDay("u2", at(tuesday, 9), at(wednesday, 12))))
}

func TestOverlap_WeeklyBeforeItsStart(t *testing.T) {
	nextMonday := monday.AddDate(0, 0, 7)
	perm := permWeekly("u1", nextMonday, 0)

	// до старта постоянного бронирования конфликтов нет
	assert.False(t, Overlap(perm, oneTime("u2", at(monday, 9), at(monday, 17))))
	assert.True(t, Overlap(perm, oneTime("u2", at(nextMonday, 9), at(nextMonday, 17))))
}

func TestOverlap_PermanentVsPermanent(t *testing.T) {
	monthly := permMonthly("u1", monday)
	weeklyMonWed := permWeekly("u2", monday, 0, 2)
	weeklyTueThu := permWeekly("u3", monday, 1, 3)
	weeklyWedFri := permWeekly("u4", monday, 2, 4)

	// monthly пересекается с любым постоянным
	assert.True(t, Overlap(monthly, weeklyMonWed))
	assert.True(t, Overlap(weeklyTueThu, monthly))

	// weekly-weekly: пересечение множеств дней недели
	assert.True(t, Overlap(weeklyMonWed, weeklyWedFri))
	assert.False(t, Overlap(weeklyMonWed, weeklyTueThu))
}

func TestOccupiedDays_MultiDay(t *testing.T) {
	// со вторника 9:00 по четверг 12:00
	tuesday := monday.AddDate(0, 0, 1)
	thursday := monday.AddDate(0, 0, 3)
	b := multiDay("u1", at(tuesday, 9), at(thursday, 12))

	days := OccupiedDays(b, monday, monday.AddDate(0, 0, 7))
	require.Len(t, days, 3)
	assert.Equal(t, tuesday, days[0])
	assert.Equal(t, monday.AddDate(0, 0, 2), days[1])
	assert.Equal(t, thursday, days[2])
}

func TestOccupiedDays_Weekly(t *testing.T) {
	b := permWeekly("u1", monday, 0, 2)

	days := OccupiedDays(b, monday, monday.AddDate(0, 0, 7))
	require.Len(t, days, 2)
	assert.Equal(t, monday, days[0])
	assert.Equal(t, monday.AddDate(0, 0, 2), days[1])
}

func TestWeekdayIndex_MondayBased(t *testing.T) {
	assert.Equal(t, 0, domain.WeekdayIndex(monday))
	assert.Equal(t, 2, domain.WeekdayIndex(monday.AddDate(0, 0, 2)))
	assert.Equal(t, 6, domain.WeekdayIndex(monday.AddDate(0, 0, 6)))
}

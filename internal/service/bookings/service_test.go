package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nash87/parkhub-sub000/internal/domain"
	bookingRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/booking"
	"github.com/nash87/parkhub-sub000/internal/service/bookings/models"
)

// 2025-10-13 is a Monday.
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	bookings map[string]*domain.Booking

	cancelErr       error
	updateStatusErr map[string]error

	cancelled []string
	completed []string
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:        make(map[string]*domain.Booking),
		updateStatusErr: make(map[string]error),
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetExpiredActive(_ context.Context, now time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.Status == domain.StatusActive && b.EndTime != nil && !b.EndTime.After(now) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	if err := f.updateStatusErr[id]; err != nil {
		return err
	}
	f.bookings[id].Status = status
	if status == domain.StatusCompleted {
		f.completed = append(f.completed, id)
	}
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id string, at time.Time) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	b := f.bookings[id]
	b.Status = domain.StatusCancelled
	b.CancelledAt = &at
	f.cancelled = append(f.cancelled, id)
	return nil
}

// fakeWaitlist собирает дни уведомлений, отправленные фоновой горутиной
type fakeWaitlist struct {
	mu   sync.Mutex
	done chan struct{}
	want int
	err  error

	days []time.Time
}

func newFakeWaitlist(want int) *fakeWaitlist {
	return &fakeWaitlist{done: make(chan struct{}), want: want}
}

func (f *fakeWaitlist) ScanAndNotify(_ context.Context, _ string, day time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, day)
	if len(f.days) == f.want {
		close(f.done)
	}
	return f.err
}

func (f *fakeWaitlist) recorded() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.days...)
}

func (f *fakeWaitlist) wait(t *testing.T) []time.Time {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("waitlist was not notified in time")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.days
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeMetrics) RecordBookingEvent(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func newTestService(repo *fakeBookingRepo, waitlist WaitlistNotifier, now time.Time) (*Service, *fakeMetrics) {
	metrics := &fakeMetrics{}
	svc := NewService(repo, waitlist, metrics, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc, metrics
}

func activeOneTime(id, userID string, day time.Time) *domain.Booking {
	start := day.Add(9 * time.Hour)
	end := day.Add(17 * time.Hour)
	return &domain.Booking{
		ID:        id,
		UserID:    userID,
		SlotID:    "s1",
		LotID:     "l1",
		Kind:      domain.KindOneTime,
		StartTime: start,
		EndTime:   &end,
		Status:    domain.StatusActive,
		LotName:   "Main lot",
		SlotLabel: "A-01",
	}
}

func TestGetByID_Owner(t *testing.T) {
	repo := newFakeBookingRepo(activeOneTime("b1", "u1", monday))
	svc, _ := newTestService(repo, newFakeWaitlist(0), monday)

	resp, err := svc.GetByID(context.Background(), "b1", "u1", domain.RoleUser)

	require.NoError(t, err)
	assert.Equal(t, "b1", resp.ID)
	assert.Equal(t, "one_time", resp.BookingType)
	assert.Equal(t, "A-01", resp.SlotNumber)
}

func TestGetByID_AdminSeesForeignBooking(t *testing.T) {
	repo := newFakeBookingRepo(activeOneTime("b1", "u1", monday))
	svc, _ := newTestService(repo, newFakeWaitlist(0), monday)

	resp, err := svc.GetByID(context.Background(), "b1", "admin-7", domain.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, "u1", resp.UserID)
}

func TestGetByID_AccessDenied(t *testing.T) {
	repo := newFakeBookingRepo(activeOneTime("b1", "u1", monday))
	svc, _ := newTestService(repo, newFakeWaitlist(0), monday)

	_, err := svc.GetByID(context.Background(), "b1", "u2", domain.RoleUser)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(newFakeBookingRepo(), newFakeWaitlist(0), monday)

	_, err := svc.GetByID(context.Background(), "missing", "u1", domain.RoleUser)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	active := activeOneTime("b1", "u1", monday)
	cancelled := activeOneTime("b2", "u1", monday.AddDate(0, 0, 1))
	cancelled.Status = domain.StatusCancelled
	repo := newFakeBookingRepo(active, cancelled)
	svc, _ := newTestService(repo, newFakeWaitlist(0), monday)

	status := "active"
	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: "u1",
		Status: &status,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "b1", resp.Bookings[0].ID)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc, _ := newTestService(newFakeBookingRepo(), newFakeWaitlist(0), monday)

	status := "pending"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: "u1",
		Status: &status,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_OwnerCancelsAndWaitlistNotified(t *testing.T) {
	booking := activeOneTime("b1", "u1", monday)
	repo := newFakeBookingRepo(booking)
	waitlist := newFakeWaitlist(1)
	svc, metrics := newTestService(repo, waitlist, monday)

	err := svc.Cancel(context.Background(), "b1", "u1", domain.RoleUser)

	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, repo.cancelled)
	assert.Equal(t, []string{"cancelled"}, metrics.events)

	days := waitlist.wait(t)
	require.Len(t, days, 1)
	assert.Equal(t, monday, days[0])
}

func TestCancel_MultiDayFreesEveryDay(t *testing.T) {
	start := monday.Add(8 * time.Hour)
	end := monday.AddDate(0, 0, 2).Add(18 * time.Hour)
	booking := &domain.Booking{
		ID:        "b1",
		UserID:    "u1",
		SlotID:    "s1",
		Kind:      domain.KindMultiDay,
		StartTime: start,
		EndTime:   &end,
		Status:    domain.StatusActive,
	}
	repo := newFakeBookingRepo(booking)
	waitlist := newFakeWaitlist(3)
	svc, _ := newTestService(repo, waitlist, monday)

	require.NoError(t, svc.Cancel(context.Background(), "b1", "u1", domain.RoleUser))

	days := waitlist.wait(t)
	assert.Equal(t, []time.Time{monday, monday.AddDate(0, 0, 1), monday.AddDate(0, 0, 2)}, days)
}

func TestCancel_AdminCancelsForeignBooking(t *testing.T) {
	repo := newFakeBookingRepo(activeOneTime("b1", "u1", monday))
	waitlist := newFakeWaitlist(1)
	svc, _ := newTestService(repo, waitlist, monday)

	err := svc.Cancel(context.Background(), "b1", "admin-7", domain.RoleAdmin)

	require.NoError(t, err)
	waitlist.wait(t)
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := newFakeBookingRepo(activeOneTime("b1", "u1", monday))
	svc, _ := newTestService(repo, newFakeWaitlist(0), monday)

	err := svc.Cancel(context.Background(), "b1", "u2", domain.RoleUser)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := activeOneTime("b1", "u1", monday)
	booking.Status = domain.StatusCancelled
	repo := newFakeBookingRepo(booking)
	svc, _ := newTestService(repo, newFakeWaitlist(0), monday)

	err := svc.Cancel(context.Background(), "b1", "u1", domain.RoleUser)

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_NotFound(t *testing.T) {
	svc, _ := newTestService(newFakeBookingRepo(), newFakeWaitlist(0), monday)

	err := svc.Cancel(context.Background(), "missing", "u1", domain.RoleUser)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCompleteExpired(t *testing.T) {
	lastWeek := monday.AddDate(0, 0, -7)
	expired := activeOneTime("b1", "u1", lastWeek)
	stillActive := activeOneTime("b2", "u1", monday.AddDate(0, 0, 7))
	repo := newFakeBookingRepo(expired, stillActive)
	waitlist := newFakeWaitlist(0)
	svc, metrics := newTestService(repo, waitlist, monday)

	completed, err := svc.CompleteExpired(context.Background(), monday)

	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, []string{"b1"}, repo.completed)
	assert.Equal(t, []string{"completed"}, metrics.events)
	assert.Equal(t, domain.StatusActive, repo.bookings["b2"].Status)

	// завершение освобождает последний день бронирования для очереди ожидания
	assert.Equal(t, []time.Time{lastWeek}, waitlist.recorded())
}

func TestCompleteExpired_ContinuesPastFailure(t *testing.T) {
	lastWeek := monday.AddDate(0, 0, -7)
	first := activeOneTime("b1", "u1", lastWeek)
	second := activeOneTime("b2", "u2", lastWeek)
	repo := newFakeBookingRepo(first, second)
	repo.updateStatusErr["b1"] = errors.New("connection reset")
	waitlist := newFakeWaitlist(0)
	svc, _ := newTestService(repo, waitlist, monday)

	completed, err := svc.CompleteExpired(context.Background(), monday)

	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, []string{"b2"}, repo.completed)
	assert.Len(t, waitlist.recorded(), 1)
}

func TestCompleteExpired_WaitlistErrorDoesNotBlockCompletion(t *testing.T) {
	lastWeek := monday.AddDate(0, 0, -7)
	repo := newFakeBookingRepo(activeOneTime("b1", "u1", lastWeek))
	waitlist := newFakeWaitlist(0)
	waitlist.err = errors.New("notify service down")
	svc, _ := newTestService(repo, waitlist, monday)

	completed, err := svc.CompleteExpired(context.Background(), monday)

	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, []string{"b1"}, repo.completed)
}

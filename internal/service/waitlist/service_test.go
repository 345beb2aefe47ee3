package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nash87/parkhub-sub000/internal/domain"
	lotRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/lot"
	waitlistRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/waitlist"
)

// 2025-10-13 is a Monday.
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fakeWaitlistRepo struct {
	entries []*domain.WaitlistEntry
	deleted []string
}

func (f *fakeWaitlistRepo) Create(_ context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	e.CreatedAt = monday.Add(time.Duration(len(f.entries)) * time.Minute)
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeWaitlistRepo) GetByID(_ context.Context, id string) (*domain.WaitlistEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, waitlistRepo.ErrEntryNotFound
}

// GetBySlotAndDay возвращает записи в порядке поступления, как репозиторий
func (f *fakeWaitlistRepo) GetBySlotAndDay(_ context.Context, slotID string, day time.Time) ([]*domain.WaitlistEntry, error) {
	var result []*domain.WaitlistEntry
	for _, e := range f.entries {
		if e.SlotID == slotID && e.Day.Equal(day) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeWaitlistRepo) MarkNotified(_ context.Context, id string) error {
	for _, e := range f.entries {
		if e.ID == id {
			e.Notified = true
			return nil
		}
	}
	return waitlistRepo.ErrEntryNotFound
}

func (f *fakeWaitlistRepo) Delete(_ context.Context, id string) error {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return waitlistRepo.ErrEntryNotFound
}

func (f *fakeWaitlistRepo) DeleteOlderThan(_ context.Context, day time.Time) (int64, error) {
	var kept []*domain.WaitlistEntry
	var deleted int64
	for _, e := range f.entries {
		if e.Day.Before(day) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return deleted, nil
}

type fakeSlotRepo struct {
	slot *domain.ParkingSlot
}

func (f *fakeSlotRepo) GetSlotByID(_ context.Context, _ string) (*domain.ParkingSlot, error) {
	if f.slot == nil {
		return nil, lotRepo.ErrSlotNotFound
	}
	return f.slot, nil
}

type sentNotification struct {
	userID  string
	message string
}

type fakeNotifyClient struct {
	failFor map[string]error
	sent    []sentNotification
}

func (f *fakeNotifyClient) Notify(_ context.Context, userID string, message string) error {
	if err := f.failFor[userID]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentNotification{userID: userID, message: message})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	notifications int
}

func (f *fakeMetrics) RecordWaitlistNotification() {
	f.notifications++
}

func newTestService(repo *fakeWaitlistRepo, slotRepo *fakeSlotRepo, notify *fakeNotifyClient) (*Service, *fakeMetrics) {
	metrics := &fakeMetrics{}
	svc := NewService(repo, slotRepo, notify, metrics, nopLogger{})
	return svc, metrics
}

func testSlot() *domain.ParkingSlot {
	return &domain.ParkingSlot{ID: "s1", LotID: "l1", Label: "A-01"}
}

func TestJoin(t *testing.T) {
	repo := &fakeWaitlistRepo{}
	svc, _ := newTestService(repo, &fakeSlotRepo{slot: testSlot()}, &fakeNotifyClient{})

	entry, err := svc.Join(context.Background(), "u1", "s1", monday.Add(11*time.Hour))

	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, monday, entry.Day)
	assert.False(t, entry.Notified)
	require.Len(t, repo.entries, 1)
}

func TestJoin_SlotNotFound(t *testing.T) {
	svc, _ := newTestService(&fakeWaitlistRepo{}, &fakeSlotRepo{}, &fakeNotifyClient{})

	_, err := svc.Join(context.Background(), "u1", "missing", monday)

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestJoin_ZeroDay(t *testing.T) {
	svc, _ := newTestService(&fakeWaitlistRepo{}, &fakeSlotRepo{slot: testSlot()}, &fakeNotifyClient{})

	_, err := svc.Join(context.Background(), "u1", "s1", time.Time{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWithdraw(t *testing.T) {
	repo := &fakeWaitlistRepo{}
	svc, _ := newTestService(repo, &fakeSlotRepo{slot: testSlot()}, &fakeNotifyClient{})

	entry, err := svc.Join(context.Background(), "u1", "s1", monday)
	require.NoError(t, err)

	require.NoError(t, svc.Withdraw(context.Background(), "u1", entry.ID))
	assert.Empty(t, repo.entries)
}

func TestWithdraw_ForeignEntry(t *testing.T) {
	repo := &fakeWaitlistRepo{}
	svc, _ := newTestService(repo, &fakeSlotRepo{slot: testSlot()}, &fakeNotifyClient{})

	entry, err := svc.Join(context.Background(), "u1", "s1", monday)
	require.NoError(t, err)

	err = svc.Withdraw(context.Background(), "u2", entry.ID)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Len(t, repo.entries, 1)
}

func TestWithdraw_NotFound(t *testing.T) {
	svc, _ := newTestService(&fakeWaitlistRepo{}, &fakeSlotRepo{slot: testSlot()}, &fakeNotifyClient{})

	err := svc.Withdraw(context.Background(), "u1", "missing")

	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestScanAndNotify_FIFOOrder(t *testing.T) {
	repo := &fakeWaitlistRepo{}
	notify := &fakeNotifyClient{}
	svc, metrics := newTestService(repo, &fakeSlotRepo{slot: testSlot()}, notify)

	for _, userID := range []string{"u1", "u2", "u3"} {
		_, err := svc.Join(context.Background(), userID, "s1", monday)
		require.NoError(t, err)
	}

	require.NoError(t, svc.ScanAndNotify(context.Background(), "s1", monday))

	require.Len(t, notify.sent, 3)
	assert.Equal(t, "u1", notify.sent[0].userID)
	assert.Equal(t, "u2", notify.sent[1].userID)
	assert.Equal(t, "u3", notify.sent[2].userID)
	assert.Equal(t, "Slot A-01 is available on 2025-10-13", notify.sent[0].message)
	assert.Equal(t, 3, metrics.notifications)

	// записи остаются в очереди после уведомления
	assert.Len(t, repo.entries, 3)
	for _, e := range repo.entries {
		assert.True(t, e.Notified)
	}
}

func TestScanAndNotify_SkipsAlreadyNotified(t *testing.T) {
	repo := &fakeWaitlistRepo{}
	notify := &fakeNotifyClient{}
	svc, metrics := newTestService(repo, &fakeSlotRepo{slot: testSlot()}, notify)

	entry, err := svc.Join(context.Background(), "u1", "s1", monday)
	require.NoError(t, err)
	entry.Notified = true

	require.NoError(t, svc.ScanAndNotify(context.Background(), "s1", monday))

	assert.Empty(t, notify.sent)
	assert.Equal(t, 0, metrics.notifications)
}

func TestScanAndNotify_ContinuesPastNotifyFailure(t *testing.T) {
	repo := &fakeWaitlistRepo{}
	notify := &fakeNotifyClient{
		failFor: map[string]error{"u1": errors.New("delivery failed")},
	}
	svc, metrics := newTestService(repo, &fakeSlotRepo{slot: testSlot()}, notify)

	for _, userID := range []string{"u1", "u2"} {
		_, err := svc.Join(context.Background(), userID, "s1", monday)
		require.NoError(t, err)
	}

	require.NoError(t, svc.ScanAndNotify(context.Background(), "s1", monday))

	require.Len(t, notify.sent, 1)
	assert.Equal(t, "u2", notify.sent[0].userID)
	assert.Equal(t, 1, metrics.notifications)

	// неуведомленная запись остается кандидатом для следующего прохода
	assert.False(t, repo.entries[0].Notified)
	assert.True(t, repo.entries[1].Notified)
}

func TestDropPastEntries(t *testing.T) {
	repo := &fakeWaitlistRepo{}
	svc, _ := newTestService(repo, &fakeSlotRepo{slot: testSlot()}, &fakeNotifyClient{})

	_, err := svc.Join(context.Background(), "u1", "s1", monday.AddDate(0, 0, -2))
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), "u2", "s1", monday)
	require.NoError(t, err)

	deleted, err := svc.DropPastEntries(context.Background(), monday.Add(10*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	require.Len(t, repo.entries, 1)
	assert.Equal(t, "u2", repo.entries[0].UserID)
}

package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeBookingSweeper struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeBookingSweeper) CompleteExpired(_ context.Context, _ time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return 1, f.err
}

func (f *fakeBookingSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeWaitlistSweeper struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeWaitlistSweeper) DropPastEntries(_ context.Context, _ time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return 0, nil
}

func (f *fakeWaitlistSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeMetrics struct {
	mu   sync.Mutex
	runs int
}

func (f *fakeMetrics) RecordSweepRun() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs++
}

func (f *fakeMetrics) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestStart_SweepsImmediatelyAndStopsOnCancel(t *testing.T) {
	bookings := &fakeBookingSweeper{}
	waitlist := &fakeWaitlistSweeper{}
	metrics := &fakeMetrics{}
	s := New(bookings, waitlist, time.Hour, metrics, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	// первый проход выполняется сразу, не дожидаясь тикера
	assert.Eventually(t, func() bool {
		return bookings.count() == 1 && waitlist.count() == 1 && metrics.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}

func TestStart_TickerTriggersRepeatedSweeps(t *testing.T) {
	bookings := &fakeBookingSweeper{}
	waitlist := &fakeWaitlistSweeper{}
	metrics := &fakeMetrics{}
	s := New(bookings, waitlist, 20*time.Millisecond, metrics, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.Start(ctx)

	assert.Eventually(t, func() bool {
		return metrics.count() >= 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSweep_ContinuesPastBookingError(t *testing.T) {
	bookings := &fakeBookingSweeper{err: errors.New("db unavailable")}
	waitlist := &fakeWaitlistSweeper{}
	metrics := &fakeMetrics{}
	s := New(bookings, waitlist, time.Hour, metrics, nopLogger{})

	s.sweep(context.Background())

	assert.Equal(t, 1, waitlist.count())
	assert.Equal(t, 1, metrics.count())
}

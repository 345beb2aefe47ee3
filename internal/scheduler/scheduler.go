package scheduler

import (
	"context"
	"time"
)

// BookingSweeper завершает истекшие бронирования
type BookingSweeper interface {
	CompleteExpired(ctx context.Context, now time.Time) (int, error)
}

// WaitlistSweeper вычищает устаревшие записи очереди ожидания
type WaitlistSweeper interface {
	DropPastEntries(ctx context.Context, now time.Time) (int64, error)
}

// MetricsRecorder интерфейс для записи метрик обслуживающего прохода
type MetricsRecorder interface {
	RecordSweepRun()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодический обслуживающий проход: завершение истекших
// бронирований и очистка очереди ожидания
type Scheduler struct {
	bookings BookingSweeper
	waitlist WaitlistSweeper
	interval time.Duration
	metrics  MetricsRecorder
	logger   Logger
}

// New создает новый экземпляр планировщика
func New(
	bookings BookingSweeper,
	waitlist WaitlistSweeper,
	interval time.Duration,
	metrics MetricsRecorder,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		bookings: bookings,
		waitlist: waitlist,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
	}
}

// Start запускает периодический проход. Блокирует до отмены контекста.
// Первый проход выполняется сразу при старте
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Scheduler: started with interval %s", s.interval)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler: stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep выполняет один обслуживающий проход
func (s *Scheduler) sweep(ctx context.Context) {
	now := time.Now()

	if _, err := s.bookings.CompleteExpired(ctx, now); err != nil {
		s.logger.Error("Scheduler: failed to complete expired bookings: %v", err)
	}

	if _, err := s.waitlist.DropPastEntries(ctx, now); err != nil {
		s.logger.Error("Scheduler: failed to drop past waitlist entries: %v", err)
	}

	s.metrics.RecordSweepRun()
}

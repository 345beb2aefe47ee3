package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nash87/parkhub-sub000/internal/domain"
	lotRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/lot"
	waitlistRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/waitlist"
)

// Service сервис очереди ожидания.
// Очередь обслуживается в порядке поступления: первые записавшиеся
// уведомляются первыми. Уведомление не создает бронирование:
// пользователь проходит обычную проверку конфликтов
type Service struct {
	waitlistRepo WaitlistRepository
	slotRepo     SlotRepository
	notifyClient NotifyServiceClient
	metrics      MetricsRecorder
	logger       Logger
}

// NewService создает новый экземпляр сервиса очереди ожидания
func NewService(
	waitlistRepo WaitlistRepository,
	slotRepo SlotRepository,
	notifyClient NotifyServiceClient,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		slotRepo:     slotRepo,
		notifyClient: notifyClient,
		metrics:      metrics,
		logger:       logger,
	}
}

// Join добавляет пользователя в очередь ожидания места на день
func (s *Service) Join(ctx context.Context, userID, slotID string, day time.Time) (*domain.WaitlistEntry, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}

	if _, err := s.slotRepo.GetSlotByID(ctx, slotID); err != nil {
		if errors.Is(err, lotRepo.ErrSlotNotFound) {
			s.logger.Warn("Join: slot id=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Join: repository error for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	entry := &domain.WaitlistEntry{
		ID:     uuid.NewString(),
		SlotID: slotID,
		UserID: userID,
		Day:    domain.StartOfDay(day),
	}

	created, err := s.waitlistRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Join: repository error for user=%s, slot=%s: %v", userID, slotID, err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Join: user=%s joined waitlist for slot=%s on %s",
		userID, slotID, created.Day.Format(domain.DateFormat))
	return created, nil
}

// Withdraw удаляет запись пользователя из очереди ожидания
func (s *Service) Withdraw(ctx context.Context, userID, entryID string) error {
	entry, err := s.waitlistRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("Withdraw: entry id=%s not found", entryID)
			return ErrEntryNotFound
		}
		s.logger.Error("Withdraw: repository error for entry id=%s: %v", entryID, err)
		return fmt.Errorf("%w: Withdraw - repository error: %v", ErrInternal, err)
	}

	if entry.UserID != userID {
		s.logger.Warn("Withdraw: access denied for user=%s to entry id=%s", userID, entryID)
		return ErrAccessDenied
	}

	if err := s.waitlistRepo.Delete(ctx, entryID); err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("Withdraw: repository error for entry id=%s: %v", entryID, err)
		return fmt.Errorf("%w: Withdraw - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Withdraw: user=%s left waitlist entry id=%s", userID, entryID)
	return nil
}

// ScanAndNotify уведомляет всех еще не уведомленных в очереди места на день.
// Запись остается в очереди после уведомления: она не дает права на место
// и вычищается обслуживающим проходом после истечения дня.
// Ошибка уведомления одной записи не прерывает обработку остальных
func (s *Service) ScanAndNotify(ctx context.Context, slotID string, day time.Time) error {
	entries, err := s.waitlistRepo.GetBySlotAndDay(ctx, slotID, domain.StartOfDay(day))
	if err != nil {
		s.logger.Error("ScanAndNotify: repository error for slot=%s: %v", slotID, err)
		return fmt.Errorf("%w: ScanAndNotify - repository error: %v", ErrInternal, err)
	}

	pending := 0
	for _, entry := range entries {
		if entry.Notified {
			continue
		}
		pending++

		message := s.buildNotification(ctx, slotID, entry.Day)
		if err := s.notifyClient.Notify(ctx, entry.UserID, message); err != nil {
			s.logger.Error("ScanAndNotify: failed to notify user=%s for entry id=%s: %v",
				entry.UserID, entry.ID, err)
			continue
		}

		if err := s.waitlistRepo.MarkNotified(ctx, entry.ID); err != nil {
			s.logger.Error("ScanAndNotify: failed to mark entry id=%s notified: %v", entry.ID, err)
			continue
		}

		s.metrics.RecordWaitlistNotification()
		s.logger.Info("ScanAndNotify: notified user=%s for slot=%s on %s",
			entry.UserID, slotID, entry.Day.Format(domain.DateFormat))
	}

	if pending == 0 {
		s.logger.Info("ScanAndNotify: no pending entries for slot=%s on %s",
			slotID, day.Format(domain.DateFormat))
	}

	return nil
}

// DropPastEntries удаляет записи очереди за прошедшие дни
func (s *Service) DropPastEntries(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := s.waitlistRepo.DeleteOlderThan(ctx, domain.StartOfDay(now))
	if err != nil {
		s.logger.Error("DropPastEntries: repository error: %v", err)
		return 0, fmt.Errorf("%w: DropPastEntries - repository error: %v", ErrInternal, err)
	}

	if deleted > 0 {
		s.logger.Info("DropPastEntries: removed %d past waitlist entries", deleted)
	}

	return deleted, nil
}

// buildNotification строит текст уведомления об освободившемся месте
func (s *Service) buildNotification(ctx context.Context, slotID string, day time.Time) string {
	label := slotID
	if slot, err := s.slotRepo.GetSlotByID(ctx, slotID); err == nil {
		label = slot.Label
	}
	return fmt.Sprintf("Slot %s is available on %s", label, day.Format(domain.DateFormat))
}

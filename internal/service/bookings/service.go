package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
	bookingRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/booking"
	"github.com/nash87/parkhub-sub000/internal/occupancy"
	"github.com/nash87/parkhub-sub000/internal/service/bookings/models"
)

// Горизонт сканирования очереди ожидания после отмены бронирования
const waitlistScanHorizonDays = 14

// Таймаут фонового уведомления очереди ожидания
const waitlistNotifyTimeout = 30 * time.Second

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	waitlist     WaitlistNotifier
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	waitlist WaitlistNotifier,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		waitlist:     waitlist,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id string, userID string, role string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && role != domain.RoleAdmin {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование, администратор - любое.
// После отмены очередь ожидания уведомляется в фоне: отмена не должна ждать
// походов во внешний сервис уведомлений
func (s *Service) Cancel(ctx context.Context, bookingID string, userID string, role string) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && role != domain.RoleAdmin {
		s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", userID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	now := s.timeProvider.Now()

	if err := s.bookingRepo.Cancel(ctx, bookingID, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.metrics.RecordBookingEvent("cancelled")
	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)

	go s.notifyWaitlistForFreedDays(booking, now)

	return nil
}

// CompleteExpired переводит истекшие активные бронирования в статус completed.
// Ошибка по одной записи не прерывает обработку остальных
func (s *Service) CompleteExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.bookingRepo.GetExpiredActive(ctx, now)
	if err != nil {
		s.logger.Error("CompleteExpired: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompleteExpired - repository error: %v", ErrInternal, err)
	}

	completed := 0
	for _, booking := range expired {
		if !booking.CanExpire() {
			continue
		}

		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusCompleted); err != nil {
			s.logger.Error("CompleteExpired: failed to complete booking id=%s: %v", booking.ID, err)
			continue
		}

		s.metrics.RecordBookingEvent("completed")
		completed++

		// завершение освобождает последний занятый день, очередь ожидания
		// на этот день должна узнать об этом так же, как при отмене
		if booking.EndTime != nil {
			day := domain.StartOfDay(*booking.EndTime)
			if err := s.waitlist.ScanAndNotify(ctx, booking.SlotID, day); err != nil {
				s.logger.Error("CompleteExpired: waitlist notify failed for slot=%s day=%s: %v",
					booking.SlotID, day.Format(domain.DateFormat), err)
			}
		}
	}

	if completed > 0 {
		s.logger.Info("CompleteExpired: completed %d expired bookings", completed)
	}

	return completed, nil
}

// notifyWaitlistForFreedDays уведомляет очередь ожидания по каждому дню,
// который освободила отмена, в пределах горизонта сканирования
func (s *Service) notifyWaitlistForFreedDays(booking *domain.Booking, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), waitlistNotifyTimeout)
	defer cancel()

	from := domain.StartOfDay(now)
	until := from.AddDate(0, 0, waitlistScanHorizonDays)

	days := occupancy.OccupiedDays(booking, from, until)
	for _, day := range days {
		if err := s.waitlist.ScanAndNotify(ctx, booking.SlotID, day); err != nil {
			s.logger.Error("Cancel: waitlist notify failed for slot=%s day=%s: %v",
				booking.SlotID, day.Format(domain.DateFormat), err)
		}
	}
}

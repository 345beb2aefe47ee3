package resolve_slot_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
	lotRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/lot"
	"github.com/nash87/parkhub-sub000/internal/occupancy"
)

// UseCase use case для вычисления статуса парковочных мест.
// Статус не хранится в БД и выводится из бронирований, отсутствий
// владельца и административных флагов на момент запроса
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	lotRepo      LotRepository
	absences     AbsenceReader
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	lotRepo LotRepository,
	absences AbsenceReader,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		lotRepo:      lotRepo,
		absences:     absences,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ResolveSlot вычисляет статус одного места на заданный момент
func (uc *UseCase) ResolveSlot(ctx context.Context, req *SlotRequest) (*SlotStatus, error) {
	if req.SlotID == "" {
		return nil, fmt.Errorf("%w: slotID is required", ErrInvalidInput)
	}

	at := req.At
	if at.IsZero() {
		at = uc.timeProvider.Now()
	}
	now := uc.timeProvider.Now()

	slot, err := uc.slotRepo.GetSlotByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, lotRepo.ErrSlotNotFound) {
			uc.logger.Warn("ResolveSlot: slot id=%s not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("ResolveSlot: failed to get slot id=%s: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	status, err := uc.resolveOne(ctx, slot, at, now, req.ViewerID, map[string]bool{})
	if err != nil {
		return nil, err
	}

	return status, nil
}

// ResolveGrid вычисляет статусы всех мест парковки на заданный момент
func (uc *UseCase) ResolveGrid(ctx context.Context, req *GridRequest) (*GridResponse, error) {
	if req.LotID == "" {
		return nil, fmt.Errorf("%w: lotID is required", ErrInvalidInput)
	}

	at := req.At
	if at.IsZero() {
		at = uc.timeProvider.Now()
	}
	now := uc.timeProvider.Now()

	lotName, err := uc.lotRepo.GetNameByID(ctx, req.LotID)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			uc.logger.Warn("ResolveGrid: lot id=%s not found", req.LotID)
			return nil, ErrLotNotFound
		}
		uc.logger.Error("ResolveGrid: failed to get lot id=%s: %v", req.LotID, err)
		return nil, fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
	}

	slots, err := uc.slotRepo.GetSlotsByLot(ctx, req.LotID)
	if err != nil {
		uc.logger.Error("ResolveGrid: failed to get slots for lot id=%s: %v", req.LotID, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// Кеш отсутствий на день: несколько мест могут быть закреплены за одним владельцем
	awayCache := make(map[string]bool)

	statuses := make([]*SlotStatus, 0, len(slots))
	for _, slot := range slots {
		status, err := uc.resolveOne(ctx, slot, at, now, req.ViewerID, awayCache)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	uc.logger.Info("ResolveGrid: lot id=%s resolved %d slots at %s",
		req.LotID, len(statuses), at.Format(domain.DateFormat))

	return &GridResponse{
		LotID:   req.LotID,
		LotName: lotName,
		At:      at,
		Slots:   statuses,
	}, nil
}

// resolveOne вычисляет статус одного места с учетом бронирований и отсутствий
func (uc *UseCase) resolveOne(
	ctx context.Context,
	slot *domain.ParkingSlot,
	at, now time.Time,
	viewerID string,
	awayCache map[string]bool,
) (*SlotStatus, error) {
	var bookings []*domain.Booking

	// Флаги доминируют: читать бронирования для отключенного места не нужно
	if !slot.IsAdministrativelyUnavailable() {
		var err error
		bookings, err = uc.bookingRepo.GetActiveBySlot(ctx, slot.ID)
		if err != nil {
			uc.logger.Error("ResolveSlot: failed to get bookings for slot id=%s: %v", slot.ID, err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
	}

	ownerAway := false
	if slot.AssignedUserID != nil {
		away, ok := awayCache[*slot.AssignedUserID]
		if !ok {
			var err error
			away, err = uc.absences.IsAway(ctx, *slot.AssignedUserID, at)
			if err != nil {
				uc.logger.Error("ResolveSlot: failed to check absence for user=%s: %v", *slot.AssignedUserID, err)
				return nil, fmt.Errorf("%w: failed to check absence: %v", ErrInternal, err)
			}
			awayCache[*slot.AssignedUserID] = away
		}
		ownerAway = away
	}

	status := occupancy.Resolve(slot, bookings, ownerAway, at, now, viewerID)

	return &SlotStatus{
		SlotID:         slot.ID,
		Label:          slot.Label,
		Position:       slot.Position,
		RowID:          slot.RowID,
		Status:         status,
		AssignedUserID: slot.AssignedUserID,
	}, nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nash87/parkhub-sub000/internal/domain"
	lotRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/lot"
	"github.com/nash87/parkhub-sub000/internal/service/catalog/models"
)

// Service сервис для управления каталогом парковок: схемы, флаги мест, закрепления
type Service struct {
	lotRepo      LotRepository
	bookingRepo  BookingRepository
	waitlistRepo WaitlistRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	lotRepo LotRepository,
	bookingRepo BookingRepository,
	waitlistRepo WaitlistRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		lotRepo:      lotRepo,
		bookingRepo:  bookingRepo,
		waitlistRepo: waitlistRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateLot создает парковку со схемой рядов и мест
func (s *Service) CreateLot(ctx context.Context, req *models.CreateLotRequest) (*models.LotResponse, error) {
	s.logger.Info("CreateLot: creating lot name=%s with %d rows", req.Name, len(req.Rows))

	if err := validateLayout(req.Name, req.Rows); err != nil {
		s.logger.Warn("CreateLot: validation failed: %v", err)
		return nil, err
	}

	lot := &domain.ParkingLot{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Address: req.Address,
		Rows:    buildRows(req.Rows),
	}

	created, err := s.lotRepo.Create(ctx, lot)
	if err != nil {
		s.logger.Error("CreateLot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateLot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateLot: successfully created lot id=%s", created.ID)
	return models.FromDomainLot(created), nil
}

// GetLot получает парковку со схемой по ID
func (s *Service) GetLot(ctx context.Context, lotID string) (*models.LotResponse, error) {
	lot, err := s.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("GetLot: lot id=%s not found", lotID)
			return nil, ErrLotNotFound
		}
		s.logger.Error("GetLot: repository error for lot id=%s: %v", lotID, err)
		return nil, fmt.Errorf("%w: GetLot - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLot(lot), nil
}

// ListLots получает список всех парковок без схем
func (s *Service) ListLots(ctx context.Context) (*models.LotListResponse, error) {
	lots, err := s.lotRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListLots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLots - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLotList(lots), nil
}

// UpdateLayout изменяет схему парковки.
// Места, присутствующие в запросе по ID, сохраняют флаги и закрепления.
// Удаление места с неотмененными бронированиями запрещено: проверка
// и замена схемы выполняются в одной транзакции
func (s *Service) UpdateLayout(ctx context.Context, req *models.UpdateLayoutRequest) (*models.LotResponse, error) {
	s.logger.Info("UpdateLayout: updating lot id=%s with %d rows", req.LotID, len(req.Rows))

	if err := validateLayout(req.Name, req.Rows); err != nil {
		s.logger.Warn("UpdateLayout: validation failed: %v", err)
		return nil, err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.lotRepo.GetByID(txCtx, req.LotID)
		if err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				return ErrLotNotFound
			}
			return fmt.Errorf("%w: UpdateLayout - repository error: %v", ErrInternal, err)
		}

		removed := removedSlotIDs(existing, req.Rows)
		if len(removed) > 0 {
			inUse, err := s.bookingRepo.GetSlotIDsInUse(txCtx, removed)
			if err != nil {
				return fmt.Errorf("%w: UpdateLayout - repository error: %v", ErrInternal, err)
			}
			if len(inUse) > 0 {
				s.logger.Warn("UpdateLayout: lot id=%s, %d removed slots still have bookings", req.LotID, len(inUse))
				return fmt.Errorf("%w: slots %v", ErrSlotInUse, inUse)
			}
		}

		lot := &domain.ParkingLot{
			ID:      req.LotID,
			Name:    req.Name,
			Address: req.Address,
			Rows:    buildRows(req.Rows),
		}

		if err := s.lotRepo.ReplaceLayout(txCtx, lot); err != nil {
			return fmt.Errorf("%w: UpdateLayout - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrLotNotFound) && !errors.Is(err, ErrSlotInUse) {
			s.logger.Error("UpdateLayout: failed for lot id=%s: %v", req.LotID, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateLayout: successfully updated lot id=%s", req.LotID)
	return s.GetLot(ctx, req.LotID)
}

// DeleteLot удаляет парковку вместе с бронированиями и очередью ожидания
func (s *Service) DeleteLot(ctx context.Context, lotID string) error {
	s.logger.Info("DeleteLot: deleting lot id=%s", lotID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		deletedWaitlist, err := s.waitlistRepo.DeleteByLot(txCtx, lotID)
		if err != nil {
			return fmt.Errorf("%w: DeleteLot - waitlist cleanup error: %v", ErrInternal, err)
		}

		deletedBookings, err := s.bookingRepo.DeleteByLot(txCtx, lotID)
		if err != nil {
			return fmt.Errorf("%w: DeleteLot - bookings cleanup error: %v", ErrInternal, err)
		}

		if err := s.lotRepo.Delete(txCtx, lotID); err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				return ErrLotNotFound
			}
			return fmt.Errorf("%w: DeleteLot - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("DeleteLot: lot id=%s removed with %d bookings and %d waitlist entries",
			lotID, deletedBookings, deletedWaitlist)
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrLotNotFound) {
			s.logger.Error("DeleteLot: failed for lot id=%s: %v", lotID, err)
		}
		return err
	}

	return nil
}

// SetSlotFlag устанавливает или снимает административный флаг места
func (s *Service) SetSlotFlag(ctx context.Context, req *models.SetSlotFlagRequest) error {
	flag := domain.SlotFlag(req.Flag)
	if !domain.ValidSlotFlag(flag) {
		s.logger.Warn("SetSlotFlag: invalid flag=%s for slot id=%s", req.Flag, req.SlotID)
		return fmt.Errorf("%w: unknown flag %q", ErrInvalidInput, req.Flag)
	}

	if err := s.lotRepo.SetSlotFlag(ctx, req.SlotID, flag, req.Value); err != nil {
		if errors.Is(err, lotRepo.ErrSlotNotFound) {
			s.logger.Warn("SetSlotFlag: slot id=%s not found", req.SlotID)
			return ErrSlotNotFound
		}
		s.logger.Error("SetSlotFlag: repository error for slot id=%s: %v", req.SlotID, err)
		return fmt.Errorf("%w: SetSlotFlag - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetSlotFlag: slot id=%s flag=%s set to %t", req.SlotID, req.Flag, req.Value)
	return nil
}

// AssignSlot закрепляет место за пользователем или снимает закрепление
func (s *Service) AssignSlot(ctx context.Context, req *models.AssignSlotRequest) error {
	if req.UserID != nil && *req.UserID == "" {
		return fmt.Errorf("%w: userID must not be empty", ErrInvalidInput)
	}

	if err := s.lotRepo.SetSlotAssignedUser(ctx, req.SlotID, req.UserID); err != nil {
		if errors.Is(err, lotRepo.ErrSlotNotFound) {
			s.logger.Warn("AssignSlot: slot id=%s not found", req.SlotID)
			return ErrSlotNotFound
		}
		s.logger.Error("AssignSlot: repository error for slot id=%s: %v", req.SlotID, err)
		return fmt.Errorf("%w: AssignSlot - repository error: %v", ErrInternal, err)
	}

	if req.UserID != nil {
		s.logger.Info("AssignSlot: slot id=%s assigned to user=%s", req.SlotID, *req.UserID)
	} else {
		s.logger.Info("AssignSlot: slot id=%s assignment cleared", req.SlotID)
	}
	return nil
}

// Вспомогательные функции

// validateLayout проверяет форму схемы парковки
func validateLayout(name string, rows []models.RowSpec) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	for _, row := range rows {
		if !domain.ValidRowSide(domain.RowSide(row.Side)) {
			return fmt.Errorf("%w: unknown row side %q", ErrInvalidInput, row.Side)
		}
		for _, slot := range row.Slots {
			if slot.Label == "" {
				return fmt.Errorf("%w: slot label is required", ErrInvalidInput)
			}
		}
	}

	return nil
}

// buildRows строит domain ряды из спецификации, генерируя ID для новых мест
func buildRows(rows []models.RowSpec) []domain.LotRow {
	result := make([]domain.LotRow, len(rows))
	for i, row := range rows {
		domainRow := domain.LotRow{
			ID:       uuid.NewString(),
			Side:     domain.RowSide(row.Side),
			Position: row.Position,
			Slots:    make([]domain.ParkingSlot, len(row.Slots)),
		}
		for j, slot := range row.Slots {
			id := uuid.NewString()
			if slot.ID != nil && *slot.ID != "" {
				id = *slot.ID
			}
			domainRow.Slots[j] = domain.ParkingSlot{
				ID:       id,
				Label:    slot.Label,
				Position: slot.Position,
			}
		}
		result[i] = domainRow
	}
	return result
}

// removedSlotIDs вычисляет места существующей схемы, отсутствующие в новой
func removedSlotIDs(existing *domain.ParkingLot, rows []models.RowSpec) []string {
	kept := make(map[string]bool)
	for _, row := range rows {
		for _, slot := range row.Slots {
			if slot.ID != nil && *slot.ID != "" {
				kept[*slot.ID] = true
			}
		}
	}

	var removed []string
	for _, row := range existing.Rows {
		for _, slot := range row.Slots {
			if !kept[slot.ID] {
				removed = append(removed, slot.ID)
			}
		}
	}
	return removed
}

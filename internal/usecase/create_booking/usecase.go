package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nash87/parkhub-sub000/internal/domain"
	slotRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/lot"
	vehicleClient "github.com/nash87/parkhub-sub000/internal/integrations/vehicleservice"
	"github.com/nash87/parkhub-sub000/internal/occupancy"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	lotRepo       LotRepository
	vehicleClient VehicleServiceClient
	txManager     TransactionManager
	metrics       MetricsRecorder
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	lotRepo LotRepository,
	vehicleClient VehicleServiceClient,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		lotRepo:       lotRepo,
		vehicleClient: vehicleClient,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// два конкурирующих запроса на одно место не могут быть подтверждены оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, slot=%s, kind=%s, start=%s",
		req.UserID, req.SlotID, req.Kind, req.StartTime.Format(domain.DateFormat))

	// 1. Валидация формы запроса в зависимости от типа бронирования
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем госномер транспорта. Номер свободным текстом имеет приоритет,
	// недоступность реестра не блокирует бронирование: создаем запись без номера
	vehiclePlate := req.VehiclePlate
	if vehiclePlate == nil || *vehiclePlate == "" {
		vehiclePlate = uc.resolveVehiclePlate(ctx, req.VehicleID)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Выполняем проверку конфликтов и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем место
		slot, err := uc.slotRepo.GetSlotByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%s not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 3.2. Административные флаги доминируют над любым бронированием
		if slot.IsAdministrativelyUnavailable() {
			uc.logger.Warn("CreateBooking: slot id=%s is disabled or blocked", req.SlotID)
			return ErrSlotUnavailable
		}

		// 3.3. Получаем название парковки для денормализации
		lotName, err := uc.lotRepo.GetNameByID(txCtx, slot.LotID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get lot name id=%s: %v", slot.LotID, err)
			return fmt.Errorf("%w: failed to get lot name: %v", ErrInternal, err)
		}

		candidate := &domain.Booking{
			ID:            uuid.NewString(),
			SlotID:        req.SlotID,
			LotID:         slot.LotID,
			UserID:        req.UserID,
			Kind:          req.Kind,
			DauerInterval: req.DauerInterval,
			Weekdays:      req.Weekdays,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Status:        domain.StatusActive,
			LotName:       lotName,
			SlotLabel:     slot.Label,
			VehiclePlate:  vehiclePlate,
		}

		// 3.4. Получаем все активные бронирования этого места
		existing, err := uc.bookingRepo.GetActiveBySlot(txCtx, req.SlotID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get active bookings for slot id=%s: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		// 3.5. Проверяем пересечение занятости с каждым активным бронированием
		for _, other := range existing {
			if !occupancy.Overlap(candidate, other) {
				continue
			}
			if other.UserID == req.UserID {
				uc.logger.Warn("CreateBooking: user=%s already holds overlapping booking id=%s", req.UserID, other.ID)
				return ErrDuplicateBooking
			}
			uc.logger.Warn("CreateBooking: slot id=%s conflicts with booking id=%s of user=%s",
				req.SlotID, other.ID, other.UserID)
			return ErrSlotConflict
		}

		// 3.6. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, candidate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// исходы конфликтов учитываются после транзакции, чтобы повторы
		// сериализации не задваивали счетчик
		switch {
		case errors.Is(err, ErrSlotConflict):
			uc.metrics.RecordBookingEvent("conflict")
		case errors.Is(err, ErrDuplicateBooking):
			uc.metrics.RecordBookingEvent("duplicate")
		}
		return nil, err
	}

	uc.metrics.RecordBookingEvent("created")
	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		SlotID:        result.SlotID,
		LotID:         result.LotID,
		Kind:          result.Kind,
		DauerInterval: result.DauerInterval,
		Weekdays:      result.Weekdays,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		Status:        string(result.Status),
		LotName:       result.LotName,
		SlotLabel:     result.SlotLabel,
		VehiclePlate:  result.VehiclePlate,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// resolveVehiclePlate получает госномер транспорта из реестра
// При недоступности реестра или отсутствии транспорта возвращает nil
func (uc *UseCase) resolveVehiclePlate(ctx context.Context, vehicleID *string) *string {
	if vehicleID == nil || *vehicleID == "" {
		return nil
	}

	vehicle, err := uc.vehicleClient.GetVehicleWithGracefulDegradation(ctx, *vehicleID)
	if err != nil {
		if errors.Is(err, vehicleClient.ErrServiceDegraded) {
			uc.logger.Warn("CreateBooking: vehicle registry degraded, booking without plate: %v", err)
		} else {
			uc.logger.Warn("CreateBooking: vehicle id=%s not resolved: %v", *vehicleID, err)
		}
		return nil
	}

	return &vehicle.Plate
}

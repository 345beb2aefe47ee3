package absences

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nash87/parkhub-sub000/internal/domain"
	absenceRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/absence"
)

// Service сервис для управления отсутствиями владельцев мест.
// Отсутствие складывается из еженедельного шаблона и явных дней
type Service struct {
	absenceRepo AbsenceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отсутствий
func NewService(absenceRepo AbsenceRepository, logger Logger) *Service {
	return &Service{
		absenceRepo: absenceRepo,
		logger:      logger,
	}
}

// SetWeeklyPattern устанавливает еженедельный шаблон отсутствий пользователя.
// Пустой список снимает шаблон. Дни недели дедуплицируются и сортируются
func (s *Service) SetWeeklyPattern(ctx context.Context, userID string, weekdays []int) (*domain.AbsenceSettings, error) {
	s.logger.Info("SetWeeklyPattern: user=%s, weekdays=%v", userID, weekdays)

	normalized, err := normalizeWeekdays(weekdays)
	if err != nil {
		s.logger.Warn("SetWeeklyPattern: validation failed for user=%s: %v", userID, err)
		return nil, err
	}

	if err := s.absenceRepo.UpsertPattern(ctx, userID, normalized); err != nil {
		s.logger.Error("SetWeeklyPattern: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: SetWeeklyPattern - repository error: %v", ErrInternal, err)
	}

	return s.GetSettings(ctx, userID)
}

// AddAbsenceDay добавляет явный день отсутствия
func (s *Service) AddAbsenceDay(ctx context.Context, userID string, day time.Time) (*domain.AbsenceDay, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}

	entry := &domain.AbsenceDay{
		ID:     uuid.NewString(),
		UserID: userID,
		Day:    domain.StartOfDay(day),
	}

	created, err := s.absenceRepo.AddDay(ctx, entry)
	if err != nil {
		s.logger.Error("AddAbsenceDay: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: AddAbsenceDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddAbsenceDay: user=%s, day=%s", userID, created.Day.Format(domain.DateFormat))
	return created, nil
}

// RemoveAbsenceDay удаляет явный день отсутствия пользователя
func (s *Service) RemoveAbsenceDay(ctx context.Context, userID, entryID string) error {
	if err := s.absenceRepo.RemoveDay(ctx, userID, entryID); err != nil {
		if errors.Is(err, absenceRepo.ErrDayNotFound) {
			s.logger.Warn("RemoveAbsenceDay: entry id=%s not found for user=%s", entryID, userID)
			return ErrDayNotFound
		}
		s.logger.Error("RemoveAbsenceDay: repository error for user=%s: %v", userID, err)
		return fmt.Errorf("%w: RemoveAbsenceDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveAbsenceDay: user=%s, entry id=%s removed", userID, entryID)
	return nil
}

// GetSettings получает настройки отсутствий пользователя
func (s *Service) GetSettings(ctx context.Context, userID string) (*domain.AbsenceSettings, error) {
	settings, err := s.absenceRepo.GetSettings(ctx, userID)
	if err != nil {
		s.logger.Error("GetSettings: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return settings, nil
}

// IsAway проверяет, отсутствует ли пользователь в указанный день.
// Шаблон и явные дни объединяются по ИЛИ
func (s *Service) IsAway(ctx context.Context, userID string, day time.Time) (bool, error) {
	settings, err := s.absenceRepo.GetSettings(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%w: IsAway - repository error: %v", ErrInternal, err)
	}

	return settings.IsAway(day), nil
}

// normalizeWeekdays валидирует, дедуплицирует и сортирует дни недели
func normalizeWeekdays(weekdays []int) ([]int, error) {
	seen := make(map[int]bool, len(weekdays))
	result := make([]int, 0, len(weekdays))

	for _, wd := range weekdays {
		if !domain.ValidWeekday(wd) {
			return nil, fmt.Errorf("%w: weekday %d is out of range [%d, %d]", ErrInvalidInput, wd, domain.MinWeekday, domain.MaxWeekday)
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		result = append(result, wd)
	}

	sort.Ints(result)
	return result, nil
}

package absence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/pkg/psqlbuilder"
	"github.com/nash87/parkhub-sub000/pkg/txmanager"
)

// DBExecutor интерфейс выполнения запросов (удовлетворяют *sql.DB и *sql.Tx)
type DBExecutor = txmanager.DBExecutor

// Repository репозиторий настроек отсутствий (homeoffice)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSettings получает паттерн и явные даты пользователя.
// Для пользователя без записей возвращает пустые настройки, не ошибку:
// отсутствие паттерна — валидное состояние.
func (r *Repository) GetSettings(ctx context.Context, userID string) (*domain.AbsenceSettings, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	settings := &domain.AbsenceSettings{UserID: userID}

	query, args, err := psqlbuilder.Select("weekdays", "updated_at").
		From("absence_patterns").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build pattern select: %v", ErrBuildQuery, err)
	}

	var weekdays pq.Int64Array
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&weekdays, &updatedAt)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("%w: GetSettings - scan pattern: %v", ErrScanRow, err)
	}
	for _, w := range weekdays {
		settings.Weekdays = append(settings.Weekdays, int(w))
	}
	settings.UpdatedAt = updatedAt.Time

	query, args, err = psqlbuilder.Select("id", "user_id", "day", "created_at").
		From("absence_days").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build days select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - execute days select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.AbsenceDay
		var createdAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.UserID, &d.Day, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetSettings - scan day: %v", ErrScanRow, err)
		}
		d.CreatedAt = createdAt.Time
		settings.Days = append(settings.Days, d)
	}
	return settings, rows.Err()
}

// UpsertPattern заменяет недельный паттерн целиком (last-write-wins)
func (r *Repository) UpsertPattern(ctx context.Context, userID string, weekdays []int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	arr := make(pq.Int64Array, 0, len(weekdays))
	for _, w := range weekdays {
		arr = append(arr, int64(w))
	}

	query, args, err := psqlbuilder.Insert("absence_patterns").
		Columns("user_id", "weekdays").
		Values(userID, arr).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET weekdays = EXCLUDED.weekdays, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertPattern - build upsert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertPattern - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// AddDay добавляет явную дату отсутствия
func (r *Repository) AddDay(ctx context.Context, d *domain.AbsenceDay) (*domain.AbsenceDay, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("absence_days").
		Columns("id", "user_id", "day").
		Values(d.ID, d.UserID, d.Day).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddDay - build insert: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: AddDay - execute insert: %v", ErrExecQuery, err)
	}
	d.CreatedAt = createdAt.Time
	return d, nil
}

// RemoveDay удаляет явную дату отсутствия.
// Фильтр по user_id исключает удаление чужой записи.
func (r *Repository) RemoveDay(ctx context.Context, userID, entryID string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("absence_days").
		Where(squirrel.Eq{"id": entryID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveDay - build delete: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveDay - execute delete: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrDayNotFound
	}
	return nil
}

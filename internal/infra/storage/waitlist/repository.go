package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/pkg/psqlbuilder"
	"github.com/nash87/parkhub-sub000/pkg/txmanager"
)

// DBExecutor интерфейс выполнения запросов (удовлетворяют *sql.DB и *sql.Tx)
type DBExecutor = txmanager.DBExecutor

// Repository репозиторий листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var entryColumns = []string{
	"id",
	"slot_id",
	"user_id",
	"day",
	"notified",
	"created_at",
}

// Create добавляет запись в лист ожидания
func (r *Repository) Create(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns("id", "slot_id", "user_id", "day").
		Values(e.ID, e.SlotID, e.UserID, e.Day).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	e.CreatedAt = createdAt.Time
	return e, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.WaitlistEntry, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select: %v", ErrBuildQuery, err)
	}

	var e domain.WaitlistEntry
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&e.ID, &e.SlotID, &e.UserID, &e.Day, &e.Notified, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}
	e.CreatedAt = createdAt.Time
	return &e, nil
}

// GetBySlotAndDay получает записи на (слот, дату) в FIFO порядке
func (r *Repository) GetBySlotAndDay(ctx context.Context, slotID string, day time.Time) ([]*domain.WaitlistEntry, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"slot_id": slotID, "day": day}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotAndDay - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotAndDay - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var entries []*domain.WaitlistEntry
	for rows.Next() {
		var e domain.WaitlistEntry
		var createdAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.SlotID, &e.UserID, &e.Day, &e.Notified, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetBySlotAndDay - scan entry: %v", ErrScanRow, err)
		}
		e.CreatedAt = createdAt.Time
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// MarkNotified помечает запись как уведомленную
func (r *Repository) MarkNotified(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("notified", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - build update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - execute update: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Delete удаляет запись листа ожидания
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteOlderThan удаляет записи с датой раньше указанной (maintenance sweep)
func (r *Repository) DeleteOlderThan(ctx context.Context, day time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("waitlist_entries").
		Where(squirrel.Lt{"day": day}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - build delete: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - execute delete: %v", ErrExecQuery, err)
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}

// DeleteByLot удаляет записи листа ожидания для всех слотов парковки
// (каскад при удалении парковки)
func (r *Repository) DeleteByLot(ctx context.Context, lotID string) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("waitlist_entries").
		Where(squirrel.Expr("slot_id IN (SELECT id FROM parking_slots WHERE lot_id = ?)", lotID)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByLot - build delete: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByLot - execute delete: %v", ErrExecQuery, err)
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}

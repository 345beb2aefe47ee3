package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/pkg/psqlbuilder"
	"github.com/nash87/parkhub-sub000/pkg/txmanager"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"slot_id",
	"lot_id",
	"user_id",
	"kind",
	"dauer_interval",
	"weekdays",
	"start_time",
	"end_time",
	"status",
	"lot_name",
	"slot_label",
	"vehicle_plate",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её — при создании
// с проверкой конфликтов вставка обязана идти в той же транзакции, что и
// чтение активных бронирований слота.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"slot_id",
			"lot_id",
			"user_id",
			"kind",
			"dauer_interval",
			"weekdays",
			"start_time",
			"end_time",
			"status",
			"lot_name",
			"slot_label",
			"vehicle_plate",
		).
		Values(
			b.ID,
			b.SlotID,
			b.LotID,
			b.UserID,
			b.Kind,
			dauerValue(b.DauerInterval),
			weekdaysValue(b.Weekdays),
			b.StartTime,
			b.EndTime,
			b.Status,
			b.LotName,
			b.SlotLabel,
			b.VehiclePlate,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// GetActiveBySlot получает все активные бронирования слота.
// Вызывается внутри сериализуемой транзакции проверки конфликтов.
func (r *Repository) GetActiveBySlot(ctx context.Context, slotID string) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID, "status": domain.StatusActive}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, query, args, "GetActiveBySlot")
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, query, args, "GetByUserID")
}

// GetExpiredActive получает активные конечные бронирования, чей end_time
// уже прошел. Permanent бронирования не имеют end_time и не попадают в выборку.
func (r *Repository) GetExpiredActive(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.NotEq{"end_time": nil}).
		Where(squirrel.LtOrEq{"end_time": now}).
		OrderBy("end_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredActive - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, query, args, "GetExpiredActive")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Cancel переводит бронирование в cancelled и фиксирует время отмены.
// Запись не удаляется — отмененные бронирования сохраняются для истории.
func (r *Repository) Cancel(ctx context.Context, id string, at time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", at).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// GetSlotIDsInUse возвращает подмножество slotIDs, на которые ссылается
// хотя бы одно неотмененное бронирование. Используется проверкой SlotInUse
// при редактировании схемы парковки.
func (r *Repository) GetSlotIDsInUse(ctx context.Context, slotIDs []string) ([]string, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT slot_id").
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotIDs}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotIDsInUse - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotIDsInUse - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var inUse []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetSlotIDsInUse - scan slot id: %v", ErrScanRow, err)
		}
		inUse = append(inUse, id)
	}
	return inUse, rows.Err()
}

// DeleteByLot физически удаляет бронирования парковки.
// Единственный путь физического удаления — каскад при удалении парковки
// (GDPR/reset flow).
func (r *Repository) DeleteByLot(ctx context.Context, lotID string) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"lot_id": lotID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByLot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByLot - execute delete: %v", ErrExecQuery, err)
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}

func (r *Repository) queryBookings(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]*domain.Booking, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b         domain.Booking
		dauer     sql.NullString
		weekdays  pq.Int64Array
		endTime   sql.NullTime
		cancelled sql.NullTime
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.SlotID,
		&b.LotID,
		&b.UserID,
		&b.Kind,
		&dauer,
		&weekdays,
		&b.StartTime,
		&endTime,
		&b.Status,
		&b.LotName,
		&b.SlotLabel,
		&b.VehiclePlate,
		&cancelled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dauer.Valid {
		d := domain.DauerInterval(dauer.String)
		b.DauerInterval = &d
	}
	for _, w := range weekdays {
		b.Weekdays = append(b.Weekdays, int(w))
	}
	if endTime.Valid {
		t := endTime.Time
		b.EndTime = &t
	}
	if cancelled.Valid {
		t := cancelled.Time
		b.CancelledAt = &t
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func dauerValue(d *domain.DauerInterval) interface{} {
	if d == nil {
		return nil
	}
	return string(*d)
}

func weekdaysValue(weekdays []int) interface{} {
	if len(weekdays) == 0 {
		return nil
	}
	arr := make(pq.Int64Array, 0, len(weekdays))
	for _, w := range weekdays {
		arr = append(arr, int64(w))
	}
	return arr
}

package lot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/pkg/psqlbuilder"
	"github.com/nash87/parkhub-sub000/pkg/txmanager"
)

// Repository репозиторий парковок, рядов и слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var slotColumns = []string{
	"id",
	"lot_id",
	"row_id",
	"label",
	"position",
	"disabled",
	"blocked",
	"assigned_user_id",
}

// Create создает парковку вместе с рядами и слотами.
// Вызывается внутри транзакции из catalog service.
func (r *Repository) Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_lots").
		Columns("id", "name", "address").
		Values(lot.ID, lot.Name, lot.Address).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build lot insert: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute lot insert: %v", ErrExecQuery, err)
	}
	lot.CreatedAt = createdAt.Time
	lot.UpdatedAt = updatedAt.Time

	if err := r.insertRows(ctx, executor, lot.ID, lot.Rows); err != nil {
		return nil, err
	}
	return lot, nil
}

// GetByID получает парковку с полным деревом рядов и слотов
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ParkingLot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "address", "created_at", "updated_at").
		From("parking_lots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select: %v", ErrBuildQuery, err)
	}

	var lot domain.ParkingLot
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&lot.ID, &lot.Name, &lot.Address, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lot: %v", ErrScanRow, err)
	}
	lot.CreatedAt = createdAt.Time
	lot.UpdatedAt = updatedAt.Time

	rows, err := r.getRows(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	lot.Rows = rows
	return &lot, nil
}

// GetNameByID получает отображаемое имя парковки
func (r *Repository) GetNameByID(ctx context.Context, id string) (string, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("name").
		From("parking_lots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: GetNameByID - build select: %v", ErrBuildQuery, err)
	}

	var name string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&name)
	if err == sql.ErrNoRows {
		return "", ErrLotNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: GetNameByID - scan name: %v", ErrScanRow, err)
	}
	return name, nil
}

// List получает все парковки без дерева слотов
func (r *Repository) List(ctx context.Context) ([]*domain.ParkingLot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "address", "created_at", "updated_at").
		From("parking_lots").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var lots []*domain.ParkingLot
	for rows.Next() {
		var lot domain.ParkingLot
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&lot.ID, &lot.Name, &lot.Address, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan lot: %v", ErrScanRow, err)
		}
		lot.CreatedAt = createdAt.Time
		lot.UpdatedAt = updatedAt.Time
		lots = append(lots, &lot)
	}
	return lots, rows.Err()
}

// ReplaceLayout заменяет дерево рядов/слотов парковки целиком.
// Слоты, присутствующие в новой схеме, сохраняют ID, флаги и закрепление;
// отсутствующие удаляются. Проверка SlotInUse выполняется сервисом до
// вызова, в той же транзакции.
func (r *Repository) ReplaceLayout(ctx context.Context, lot *domain.ParkingLot) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	keepIDs := make([]string, 0)
	rowIDs := make([]string, 0, len(lot.Rows))
	for _, row := range lot.Rows {
		rowIDs = append(rowIDs, row.ID)
		for _, s := range row.Slots {
			keepIDs = append(keepIDs, s.ID)
		}
	}

	// Сначала вставляем новые ряды и перепривязываем к ним сохраняемые слоты
	// через upsert. Порядок важен: удаление старых рядов до перепривязки
	// снесло бы слоты вместе с флагами и закреплениями.
	if err := r.insertRows(ctx, executor, lot.ID, lot.Rows); err != nil {
		return err
	}

	// удаляем слоты, которых нет в новой схеме
	deleteSlots := psqlbuilder.Delete("parking_slots").
		Where(squirrel.Eq{"lot_id": lot.ID})
	if len(keepIDs) > 0 {
		deleteSlots = deleteSlots.Where(squirrel.NotEq{"id": keepIDs})
	}
	query, args, err := deleteSlots.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceLayout - build slot delete: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceLayout - delete removed slots: %v", ErrExecQuery, err)
	}

	// старые ряды теперь пусты, их идентичность не referenced извне
	deleteRows := psqlbuilder.Delete("lot_rows").
		Where(squirrel.Eq{"lot_id": lot.ID})
	if len(rowIDs) > 0 {
		deleteRows = deleteRows.Where(squirrel.NotEq{"id": rowIDs})
	}
	query, args, err = deleteRows.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceLayout - build row delete: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceLayout - delete stale rows: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Update("parking_lots").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": lot.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceLayout - build lot update: %v", ErrBuildQuery, err)
	}
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReplaceLayout - touch lot: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrLotNotFound
	}
	return nil
}

// Delete удаляет парковку. Ряды и слоты удаляются каскадом по FK;
// бронирования и лист ожидания каскадно чистит catalog service в той же
// транзакции.
func (r *Repository) Delete(ctx context.Context, lotID string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parking_lots").
		Where(squirrel.Eq{"id": lotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrLotNotFound
	}
	return nil
}

// GetSlotIDs получает идентификаторы всех слотов парковки
func (r *Repository) GetSlotIDs(ctx context.Context, lotID string) ([]string, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("parking_slots").
		Where(squirrel.Eq{"lot_id": lotID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotIDs - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotIDs - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetSlotIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetSlotByID получает слот по ID
func (r *Repository) GetSlotByID(ctx context.Context, slotID string) (*domain.ParkingSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("parking_slots").
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - build select: %v", ErrBuildQuery, err)
	}

	var s domain.ParkingSlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.LotID, &s.RowID, &s.Label, &s.Position,
		&s.Disabled, &s.Blocked, &s.AssignedUserID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - scan slot: %v", ErrScanRow, err)
	}
	return &s, nil
}

// GetSlotsByLot получает все слоты парковки в порядке схемы
func (r *Repository) GetSlotsByLot(ctx context.Context, lotID string) ([]*domain.ParkingSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id", "s.lot_id", "s.row_id", "s.label", "s.position",
		"s.disabled", "s.blocked", "s.assigned_user_id",
	).
		From("parking_slots s").
		Join("lot_rows r ON r.id = s.row_id").
		Where(squirrel.Eq{"s.lot_id": lotID}).
		OrderBy("r.position ASC", "s.position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotsByLot - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotsByLot - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var slots []*domain.ParkingSlot
	for rows.Next() {
		var s domain.ParkingSlot
		err := rows.Scan(
			&s.ID, &s.LotID, &s.RowID, &s.Label, &s.Position,
			&s.Disabled, &s.Blocked, &s.AssignedUserID,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSlotsByLot - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}
	return slots, rows.Err()
}

// SetSlotFlag устанавливает административный флаг слота
func (r *Repository) SetSlotFlag(ctx context.Context, slotID string, flag domain.SlotFlag, value bool) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_slots").
		Set(string(flag), value).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetSlotFlag - build update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetSlotFlag - execute update: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// SetSlotAssignedUser закрепляет слот за пользователем (nil снимает закрепление)
func (r *Repository) SetSlotAssignedUser(ctx context.Context, slotID string, userID *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_slots").
		Set("assigned_user_id", userID).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetSlotAssignedUser - build update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetSlotAssignedUser - execute update: %v", ErrExecQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *Repository) getRows(ctx context.Context, executor DBExecutor, lotID string) ([]domain.LotRow, error) {
	query, args, err := psqlbuilder.Select("id", "lot_id", "side", "position").
		From("lot_rows").
		Where(squirrel.Eq{"lot_id": lotID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getRows - build row select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getRows - execute row select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var lotRows []domain.LotRow
	for rows.Next() {
		var row domain.LotRow
		if err := rows.Scan(&row.ID, &row.LotID, &row.Side, &row.Position); err != nil {
			return nil, fmt.Errorf("%w: getRows - scan row: %v", ErrScanRow, err)
		}
		lotRows = append(lotRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getRows - iterate rows: %v", ErrScanRow, err)
	}

	slots, err := r.GetSlotsByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	byRow := make(map[string][]domain.ParkingSlot, len(lotRows))
	for _, s := range slots {
		byRow[s.RowID] = append(byRow[s.RowID], *s)
	}
	for i := range lotRows {
		lotRows[i].Slots = byRow[lotRows[i].ID]
	}
	return lotRows, nil
}

func (r *Repository) insertRows(ctx context.Context, executor DBExecutor, lotID string, lotRows []domain.LotRow) error {
	for _, row := range lotRows {
		query, args, err := psqlbuilder.Insert("lot_rows").
			Columns("id", "lot_id", "side", "position").
			Values(row.ID, lotID, row.Side, row.Position).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: insertRows - build row insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: insertRows - execute row insert: %v", ErrExecQuery, err)
		}

		for _, s := range row.Slots {
			// существующие слоты сохраняют флаги и закрепление
			query, args, err := psqlbuilder.Insert("parking_slots").
				Columns("id", "lot_id", "row_id", "label", "position").
				Values(s.ID, lotID, row.ID, s.Label, s.Position).
				Suffix("ON CONFLICT (id) DO UPDATE SET row_id = EXCLUDED.row_id, label = EXCLUDED.label, position = EXCLUDED.position").
				ToSql()
			if err != nil {
				return fmt.Errorf("%w: insertRows - build slot insert: %v", ErrBuildQuery, err)
			}
			if _, err := executor.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: insertRows - execute slot insert: %v", ErrExecQuery, err)
			}
		}
	}
	return nil
}

package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// DBExecutor интерфейс выполнения запросов (общий с dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий переопределений расписания (блокировки дней и слотов)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDayOverride получает переопределение дня
// Возвращает ErrOverrideNotFound, если строки нет (день не переопределён)
func (r *Repository) GetDayOverride(ctx context.Context, masterID int64, date time.Time) (*domain.DayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"date",
		"is_blocked",
		"created_at",
		"updated_at",
	).
		From("day_overrides").
		Where(squirrel.Eq{"master_id": masterID, "date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDayOverride - build select query: %v", ErrBuildQuery, err)
	}

	var override domain.DayOverride
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&override.MasterID,
		&override.Date,
		&override.IsBlocked,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayOverride - scan override: %v", ErrScanRow, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}

// SetDayOverride выставляет блокировку дня с upsert-семантикой:
// создаёт строку, если её нет, иначе обновляет
func (r *Repository) SetDayOverride(ctx context.Context, masterID int64, date time.Time, isBlocked bool) (*domain.DayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_overrides").
		Columns("master_id", "date", "is_blocked").
		Values(masterID, date, isBlocked).
		Suffix("ON CONFLICT (master_id, date) DO UPDATE SET is_blocked = EXCLUDED.is_blocked, updated_at = NOW()").
		Suffix("RETURNING id, master_id, date, is_blocked, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SetDayOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	return r.scanDayOverride(executor.QueryRowContext(ctx, query, args...), "SetDayOverride")
}

// ToggleDayOverride переключает блокировку дня
// Первый toggle несуществующей строки всегда блокирует день
func (r *Repository) ToggleDayOverride(ctx context.Context, masterID int64, date time.Time) (*domain.DayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_overrides").
		Columns("master_id", "date", "is_blocked").
		Values(masterID, date, true).
		Suffix("ON CONFLICT (master_id, date) DO UPDATE SET is_blocked = NOT day_overrides.is_blocked, updated_at = NOW()").
		Suffix("RETURNING id, master_id, date, is_blocked, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ToggleDayOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	return r.scanDayOverride(executor.QueryRowContext(ctx, query, args...), "ToggleDayOverride")
}

// GetDayOverridesInRange получает переопределения дней мастера за период,
// ключ - дата в формате YYYY-MM-DD
func (r *Repository) GetDayOverridesInRange(ctx context.Context, masterID int64, from, to time.Time) (map[string]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date", "is_blocked").
		From("day_overrides").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDayOverridesInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayOverridesInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make(map[string]bool)
	for rows.Next() {
		var date time.Time
		var isBlocked bool
		if err := rows.Scan(&date, &isBlocked); err != nil {
			return nil, fmt.Errorf("%w: GetDayOverridesInRange - scan row: %v", ErrScanRow, err)
		}
		overrides[date.Format(domain.DateFormat)] = isBlocked
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDayOverridesInRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// GetBlockedSlots получает множество вручную заблокированных слотов на дату
func (r *Repository) GetBlockedSlots(ctx context.Context, masterID int64, date time.Time) (map[types.TimeString]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time").
		From("slot_overrides").
		Where(squirrel.Eq{
			"master_id":  masterID,
			"date":       date,
			"is_blocked": true,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocked := make(map[types.TimeString]bool)
	for rows.Next() {
		var startTime types.TimeString
		if err := rows.Scan(&startTime); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedSlots - scan row: %v", ErrScanRow, err)
		}
		blocked[startTime] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedSlots - rows error: %v", ErrScanRow, err)
	}

	return blocked, nil
}

// GetBlockedSlotsInRange получает вручную заблокированные слоты за период,
// сгруппированные по дате (ключ - YYYY-MM-DD)
func (r *Repository) GetBlockedSlotsInRange(ctx context.Context, masterID int64, from, to time.Time) (map[string]map[types.TimeString]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date", "start_time").
		From("slot_overrides").
		Where(squirrel.Eq{"master_id": masterID, "is_blocked": true}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedSlotsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedSlotsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocked := make(map[string]map[types.TimeString]bool)
	for rows.Next() {
		var date time.Time
		var startTime types.TimeString
		if err := rows.Scan(&date, &startTime); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedSlotsInRange - scan row: %v", ErrScanRow, err)
		}

		key := date.Format(domain.DateFormat)
		if blocked[key] == nil {
			blocked[key] = make(map[types.TimeString]bool)
		}
		blocked[key][startTime] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedSlotsInRange - rows error: %v", ErrScanRow, err)
	}

	return blocked, nil
}

// ToggleSlotOverride переключает ручную блокировку одного слота
// и возвращает новое состояние
//
// Переключение несимметрично: первый toggle несуществующей строки всегда
// создаёт её заблокированной. Выполняется одним запросом, чтобы два
// конкурентных переключения не потеряли друг друга.
func (r *Repository) ToggleSlotOverride(ctx context.Context, masterID int64, date time.Time, startTime types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_overrides").
		Columns("master_id", "date", "start_time", "is_blocked").
		Values(masterID, date, startTime, true).
		Suffix("ON CONFLICT (master_id, date, start_time) DO UPDATE SET is_blocked = NOT slot_overrides.is_blocked, updated_at = NOW()").
		Suffix("RETURNING is_blocked").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ToggleSlotOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	var isBlocked bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&isBlocked); err != nil {
		return false, fmt.Errorf("%w: ToggleSlotOverride - execute upsert: %v", ErrExecQuery, err)
	}

	return isBlocked, nil
}

// scanDayOverride сканирует строку с RETURNING в переопределение дня
func (r *Repository) scanDayOverride(row *sql.Row, op string) (*domain.DayOverride, error) {
	var override domain.DayOverride
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.ID,
		&override.MasterID,
		&override.Date,
		&override.IsBlocked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan override: %v", ErrScanRow, op, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}

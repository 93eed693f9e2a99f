package master

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (общий с dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var masterColumns = []string{
	"id",
	"name",
	"description",
	"photo",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с мастерами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового мастера
func (r *Repository) Create(ctx context.Context, m *domain.Master) (*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("masters").
		Columns("name", "description", "photo").
		Values(m.Name, m.Description, m.Photo).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return m, nil
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(masterColumns...).
		From("masters").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.Master
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Photo,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMasterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan master: %v", ErrScanRow, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}

// List получает всех мастеров, отсортированных по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(masterColumns...).
		From("masters").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	masters := make([]*domain.Master, 0)
	for rows.Next() {
		var m domain.Master
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Description,
			&m.Photo,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		m.CreatedAt = createdAt.Time
		m.UpdatedAt = updatedAt.Time

		masters = append(masters, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return masters, nil
}

// Update обновляет профиль мастера; nil-поля не изменяются
func (r *Repository) Update(ctx context.Context, id int64, update domain.MasterUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("masters").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.Name != nil {
		updateBuilder = updateBuilder.Set("name", *update.Name)
	}
	if update.Description != nil {
		updateBuilder = updateBuilder.Set("description", *update.Description)
	}
	if update.Photo != nil {
		updateBuilder = updateBuilder.Set("photo", *update.Photo)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMasterNotFound
	}

	return nil
}

// Delete удаляет мастера
// Переопределения расписания удаляются каскадно (FK); бронирования
// не трогаются - политика запрета удаления при активных бронированиях
// проверяется сервисным слоем до вызова
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("masters").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMasterNotFound
	}

	return nil
}

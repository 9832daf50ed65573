package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	"github.com/prisma-detailing/DetailingService/pkg/dbmetrics"
	"github.com/prisma-detailing/DetailingService/pkg/psqlbuilder"
)

var windowColumns = []string{
	"id",
	"detailer_id",
	"date",
	"start_time",
	"end_time",
	"is_available",
	"created_at",
}

// Repository репозиторий для работы с окнами доступности детейлеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOpenWindows получает открытые (is_available = true) окна указанных
// детейлеров на дату. Движок слотов - единственный потребитель этого метода:
// он читает окна свежими на каждый запрос и никогда не кэширует
func (r *Repository) GetOpenWindows(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
	if len(detailerIDs) == 0 {
		return []*domain.AvailabilityWindow{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"detailer_id": detailerIDs}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"is_available": true}).
		OrderBy("detailer_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// GetByDetailerAndDate получает все окна детейлера на дату (включая закрытые)
func (r *Repository) GetByDetailerAndDate(ctx context.Context, detailerID int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"detailer_id": detailerID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDetailerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDetailerAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// ReplaceForDate заменяет все окна детейлера на дату новым набором
// Вызывается внутри транзакции (delete + insert должны быть атомарны)
func (r *Repository) ReplaceForDate(ctx context.Context, detailerID int64, date time.Time, windows []*domain.AvailabilityWindow) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"detailer_id": detailerID}).
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForDate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceForDate - execute delete: %v", ErrExecQuery, err)
	}

	created := make([]*domain.AvailabilityWindow, 0, len(windows))
	for _, window := range windows {
		insertQuery, insertArgs, err := psqlbuilder.Insert("availability_windows").
			Columns("detailer_id", "date", "start_time", "end_time", "is_available").
			Values(detailerID, date, window.StartTime, window.EndTime, window.IsAvailable).
			Suffix("RETURNING id, created_at").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: ReplaceForDate - build insert query: %v", ErrBuildQuery, err)
		}

		inserted := &domain.AvailabilityWindow{
			DetailerID:  detailerID,
			Date:        date,
			StartTime:   window.StartTime,
			EndTime:     window.EndTime,
			IsAvailable: window.IsAvailable,
		}

		var createdAt sql.NullTime
		err = executor.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&inserted.ID, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ReplaceForDate - execute insert: %v", ErrExecQuery, err)
		}
		inserted.CreatedAt = createdAt.Time

		created = append(created, inserted)
	}

	return created, nil
}

// DeleteForDate удаляет все окна детейлера на дату
func (r *Repository) DeleteForDate(ctx context.Context, detailerID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"detailer_id": detailerID}).
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteForDate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteForDate - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// scanWindows сканирует результаты запроса в слайс окон доступности
func scanWindows(rows *sql.Rows) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0)

	for rows.Next() {
		var window domain.AvailabilityWindow
		var createdAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.DetailerID,
			&window.Date,
			&window.StartTime,
			&window.EndTime,
			&window.IsAvailable,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}

		window.CreatedAt = createdAt.Time
		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

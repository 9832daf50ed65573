package detailer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	"github.com/prisma-detailing/DetailingService/pkg/dbmetrics"
	"github.com/prisma-detailing/DetailingService/pkg/psqlbuilder"
)

var detailerColumns = []string{
	"id",
	"user_id",
	"address",
	"city",
	"post_code",
	"country",
	"latitude",
	"longitude",
	"rating",
	"commission_rate",
	"is_active",
	"is_verified",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с детейлерами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория детейлеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает детейлера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Detailer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailerColumns...).
		From("detailers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	detailer, err := scanDetailer(row)
	if err == sql.ErrNoRows {
		return nil, ErrDetailerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan detailer: %v", ErrScanRow, err)
	}

	return detailer, nil
}

// GetByUserID получает детейлера по ID пользователя платформы
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Detailer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailerColumns...).
		From("detailers").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	detailer, err := scanDetailer(row)
	if err == sql.ErrNoRows {
		return nil, ErrDetailerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan detailer: %v", ErrScanRow, err)
	}

	return detailer, nil
}

// GetActiveByLocation получает активных детейлеров в указанной локации
// Сравнение страны и города регистронезависимое, порядок стабильный (по id),
// чтобы одинаковые запросы давали байт-в-байт одинаковый результат
func (r *Repository) GetActiveByLocation(ctx context.Context, country, city string) ([]*domain.Detailer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailerColumns...).
		From("detailers").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Expr("LOWER(country) = ?", strings.ToLower(country))).
		Where(squirrel.Expr("LOWER(city) = ?", strings.ToLower(city))).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	detailers := make([]*domain.Detailer, 0)
	for rows.Next() {
		detailer, err := scanDetailer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByLocation - scan row: %v", ErrScanRow, err)
		}
		detailers = append(detailers, detailer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByLocation - rows error: %v", ErrScanRow, err)
	}

	return detailers, nil
}

// SetActive переключает флаг активности детейлера
func (r *Repository) SetActive(ctx context.Context, id int64, isActive bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("detailers").
		Set("is_active", isActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDetailerNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetailer(row rowScanner) (*domain.Detailer, error) {
	var detailer domain.Detailer
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&detailer.ID,
		&detailer.UserID,
		&detailer.Address,
		&detailer.City,
		&detailer.PostCode,
		&detailer.Country,
		&detailer.Latitude,
		&detailer.Longitude,
		&detailer.Rating,
		&detailer.CommissionRate,
		&detailer.IsActive,
		&detailer.IsVerified,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	detailer.CreatedAt = createdAt.Time
	detailer.UpdatedAt = updatedAt.Time

	return &detailer, nil
}

package servicetype

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	"github.com/prisma-detailing/DetailingService/pkg/dbmetrics"
	"github.com/prisma-detailing/DetailingService/pkg/psqlbuilder"
)

var serviceTypeColumns = []string{
	"id",
	"name",
	"description",
	"wash_type",
	"duration_minutes",
	"price",
}

// Repository репозиторий для работы с типами услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тип услуги по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceTypeColumns...).
		From("service_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var serviceType domain.ServiceType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&serviceType.ID,
		&serviceType.Name,
		&serviceType.Description,
		&serviceType.WashType,
		&serviceType.DurationMinutes,
		&serviceType.Price,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service type: %v", ErrScanRow, err)
	}

	return &serviceType, nil
}

// List получает все типы услуг
func (r *Repository) List(ctx context.Context) ([]*domain.ServiceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceTypeColumns...).
		From("service_types").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	serviceTypes := make([]*domain.ServiceType, 0)
	for rows.Next() {
		var serviceType domain.ServiceType
		err := rows.Scan(
			&serviceType.ID,
			&serviceType.Name,
			&serviceType.Description,
			&serviceType.WashType,
			&serviceType.DurationMinutes,
			&serviceType.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		serviceTypes = append(serviceTypes, &serviceType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return serviceTypes, nil
}

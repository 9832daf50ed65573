package job

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

var jobColumns = []string{
	"id",
	"booking_reference",
	"detailer_id",
	"service_type_id",
	"client_name",
	"client_phone",
	"vehicle_registration",
	"vehicle_make",
	"vehicle_model",
	"vehicle_color",
	"vehicle_year",
	"address",
	"city",
	"post_code",
	"country",
	"latitude",
	"longitude",
	"addon1",
	"addon2",
	"addon3",
	"appointment_date",
	"appointment_time",
	"service_name",
	"service_price",
	"duration_minutes",
	"status",
	"owner_note",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с работами (бронированиями)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория работ
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую работу
// Если в контексте передана активная транзакция, использует её -
// создание с проверкой доступности слота должно идти в одной транзакции
func (r *Repository) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("jobs").
		Columns(
			"booking_reference",
			"detailer_id",
			"service_type_id",
			"client_name",
			"client_phone",
			"vehicle_registration",
			"vehicle_make",
			"vehicle_model",
			"vehicle_color",
			"vehicle_year",
			"address",
			"city",
			"post_code",
			"country",
			"latitude",
			"longitude",
			"addon1",
			"addon2",
			"addon3",
			"appointment_date",
			"appointment_time",
			"service_name",
			"service_price",
			"duration_minutes",
			"status",
			"owner_note",
		).
		Values(
			j.BookingReference,
			j.DetailerID,
			j.ServiceTypeID,
			j.ClientName,
			j.ClientPhone,
			j.VehicleRegistration,
			j.VehicleMake,
			j.VehicleModel,
			j.VehicleColor,
			j.VehicleYear,
			j.Address,
			j.City,
			j.PostCode,
			j.Country,
			j.Latitude,
			j.Longitude,
			j.Addon1,
			j.Addon2,
			j.Addon3,
			j.AppointmentDate,
			j.AppointmentTime,
			j.ServiceName,
			j.ServicePrice,
			j.DurationMinutes,
			j.Status,
			j.OwnerNote,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&j.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	j.CreatedAt = createdAt.Time
	j.UpdatedAt = updatedAt.Time

	return j, nil
}

// GetByID получает работу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, ErrJobNotFound
	}

	return jobs[0], nil
}

// GetBlockingByDetailersAndDate получает работы указанных детейлеров на дату
// в статусах, занимающих календарь (pending, accepted, in_progress)
// Отменённые и завершённые работы никогда не ограничивают доступность
//
// Внутри транзакции добавляет FOR UPDATE - для проверки доступности слота
// при создании работы (защита от двух бронирований на одно окно)
func (r *Repository) GetBlockingByDetailersAndDate(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error) {
	if len(detailerIDs) == 0 {
		return []*domain.Job{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockingStatusStrings := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		blockingStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"detailer_id": detailerIDs}).
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.Eq{"status": blockingStatusStrings}).
		OrderBy("detailer_id ASC, appointment_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByDetailersAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByDetailersAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// GetByDetailerWithFilter получает работы детейлера с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу, и включению отменённых
func (r *Repository) GetByDetailerWithFilter(ctx context.Context, filter domain.DetailerJobsFilter) ([]*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"detailer_id": filter.DetailerID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	switch {
	case filter.Status != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	case filter.BlockingOnly:
		blockingStatusStrings := make([]string, len(domain.BlockingStatuses))
		for i, s := range domain.BlockingStatuses {
			blockingStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": blockingStatusStrings})
	case !filter.IncludeCancelled:
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	// Для одной даты сортируем по времени начала, для периода - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("appointment_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, appointment_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDetailerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDetailerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// UpdateStatus обновляет статус работы
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.JobStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("jobs").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// Cancel отменяет работу с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("jobs").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// scanJobs сканирует результаты запроса в слайс работ
func scanJobs(rows *sql.Rows) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0)

	for rows.Next() {
		var j domain.Job
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&j.ID,
			&j.BookingReference,
			&j.DetailerID,
			&j.ServiceTypeID,
			&j.ClientName,
			&j.ClientPhone,
			&j.VehicleRegistration,
			&j.VehicleMake,
			&j.VehicleModel,
			&j.VehicleColor,
			&j.VehicleYear,
			&j.Address,
			&j.City,
			&j.PostCode,
			&j.Country,
			&j.Latitude,
			&j.Longitude,
			&j.Addon1,
			&j.Addon2,
			&j.Addon3,
			&j.AppointmentDate,
			&j.AppointmentTime,
			&j.ServiceName,
			&j.ServicePrice,
			&j.DurationMinutes,
			&j.Status,
			&j.OwnerNote,
			&j.CancellationReason,
			&j.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanJobs - scan row: %v", ErrScanRow, err)
		}

		j.CreatedAt = createdAt.Time
		j.UpdatedAt = updatedAt.Time

		jobs = append(jobs, &j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanJobs - rows error: %v", ErrScanRow, err)
	}

	return jobs, nil
}

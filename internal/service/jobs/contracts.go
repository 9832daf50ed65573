package jobs

import (
	"context"

	"github.com/prisma-detailing/DetailingService/internal/domain"
)

// JobRepository интерфейс репозитория работ
type JobRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	GetByDetailerWithFilter(ctx context.Context, filter domain.DetailerJobsFilter) ([]*domain.Job, error)
	UpdateStatus(ctx context.Context, id int64, status domain.JobStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// DetailerRepository интерфейс репозитория детейлеров
type DetailerRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Detailer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_timeslots

import (
	"context"
	"time"

	"github.com/prisma-detailing/DetailingService/internal/domain"
)

// DetailerRepository интерфейс репозитория детейлеров
type DetailerRepository interface {
	// GetActiveByLocation получает активных детейлеров в локации (country, city)
	GetActiveByLocation(ctx context.Context, country, city string) ([]*domain.Detailer, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// GetOpenWindows получает открытые окна детейлеров на дату
	GetOpenWindows(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error)
}

// JobRepository интерфейс репозитория работ
type JobRepository interface {
	// GetBlockingByDetailersAndDate получает работы, занимающие календарь, на дату
	GetBlockingByDetailersAndDate(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package availability

import (
	"context"
	"time"

	"github.com/prisma-detailing/DetailingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByDetailerAndDate(ctx context.Context, detailerID int64, date time.Time) ([]*domain.AvailabilityWindow, error)
	ReplaceForDate(ctx context.Context, detailerID int64, date time.Time, windows []*domain.AvailabilityWindow) ([]*domain.AvailabilityWindow, error)
}

// DetailerRepository интерфейс репозитория детейлеров
type DetailerRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Detailer, error)
	SetActive(ctx context.Context, id int64, isActive bool) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

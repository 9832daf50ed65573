package create_job

import (
	"context"
	"time"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	"github.com/prisma-detailing/DetailingService/internal/integrations/customerservice"
)

// DetailerRepository интерфейс репозитория детейлеров
type DetailerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Detailer, error)
}

// ServiceTypeRepository интерфейс репозитория типов услуг
type ServiceTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceType, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetOpenWindows(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error)
}

// JobRepository интерфейс репозитория работ
type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) (*domain.Job, error)
	GetBlockingByDetailersAndDate(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error)
}

// CustomerServiceClient интерфейс клиента для CustomerService
type CustomerServiceClient interface {
	GetProfile(ctx context.Context, userID int64) (*customerservice.Profile, error)
	GetSelectedVehicleWithGracefulDegradation(ctx context.Context, userID int64) (*customerservice.Vehicle, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

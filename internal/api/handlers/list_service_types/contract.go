package list_service_types

import (
	"context"

	"github.com/prisma-detailing/DetailingService/internal/domain"
)

type ServiceTypeRepository interface {
	List(ctx context.Context) ([]*domain.ServiceType, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

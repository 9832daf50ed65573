package get_availability

import (
	"context"

	"github.com/prisma-detailing/DetailingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetForDate(ctx context.Context, req *models.GetAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package set_detailer_active

import (
	"context"

	"github.com/prisma-detailing/DetailingService/internal/service/availability/models"
)

type AvailabilityService interface {
	SetActive(ctx context.Context, req *models.SetActiveRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_job

import (
	"context"

	"github.com/prisma-detailing/DetailingService/internal/service/jobs/models"
)

type JobService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.JobResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package update_job_status

import (
	"context"

	"github.com/prisma-detailing/DetailingService/internal/service/jobs/models"
)

type JobService interface {
	UpdateStatus(ctx context.Context, jobID int64, req *models.UpdateStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

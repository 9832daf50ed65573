package get_detailer_jobs

import (
	"context"

	"github.com/prisma-detailing/DetailingService/internal/service/jobs/models"
)

type JobService interface {
	GetDetailerJobs(ctx context.Context, req *models.GetDetailerJobsRequest) (*models.JobListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	detailerRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/detailer"
	jobStorage "github.com/prisma-detailing/DetailingService/internal/infra/storage/job"
	"github.com/prisma-detailing/DetailingService/internal/service/jobs/models"
	"github.com/prisma-detailing/DetailingService/pkg/ptr"
)

type stubJobRepo struct {
	getByID                 func(ctx context.Context, id int64) (*domain.Job, error)
	getByDetailerWithFilter func(ctx context.Context, filter domain.DetailerJobsFilter) ([]*domain.Job, error)
	updateStatus            func(ctx context.Context, id int64, status domain.JobStatus) error
	cancel                  func(ctx context.Context, id int64, reason string) error
}

func (s *stubJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	return s.getByID(ctx, id)
}

func (s *stubJobRepo) GetByDetailerWithFilter(ctx context.Context, filter domain.DetailerJobsFilter) ([]*domain.Job, error) {
	return s.getByDetailerWithFilter(ctx, filter)
}

func (s *stubJobRepo) UpdateStatus(ctx context.Context, id int64, status domain.JobStatus) error {
	return s.updateStatus(ctx, id, status)
}

func (s *stubJobRepo) Cancel(ctx context.Context, id int64, reason string) error {
	return s.cancel(ctx, id, reason)
}

type stubDetailerRepo struct {
	getByUserID func(ctx context.Context, userID int64) (*domain.Detailer, error)
}

func (s *stubDetailerRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Detailer, error) {
	return s.getByUserID(ctx, userID)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testJob(status domain.JobStatus) *domain.Job {
	return &domain.Job{
		ID:               10,
		BookingReference: "ref-10",
		DetailerID:       ptr.Ptr(int64(1)),
		ServiceTypeID:    3,
		ClientName:       "Jane Smith",
		ClientPhone:      "+447700900123",
		AppointmentDate:  time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		AppointmentTime:  "10:00",
		ServiceName:      "Full Valet",
		ServicePrice:     75.0,
		DurationMinutes:  90,
		Status:           status,
	}
}

func newTestService(j *domain.Job) (*Service, *stubJobRepo) {
	repo := &stubJobRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Job, error) {
			if j == nil {
				return nil, jobStorage.ErrJobNotFound
			}
			return j, nil
		},
		getByDetailerWithFilter: func(ctx context.Context, filter domain.DetailerJobsFilter) ([]*domain.Job, error) {
			return []*domain.Job{j}, nil
		},
		updateStatus: func(ctx context.Context, id int64, status domain.JobStatus) error {
			return nil
		},
		cancel: func(ctx context.Context, id int64, reason string) error {
			return nil
		},
	}

	svc := NewService(
		repo,
		&stubDetailerRepo{
			getByUserID: func(ctx context.Context, userID int64) (*domain.Detailer, error) {
				if userID == 101 {
					return &domain.Detailer{ID: 1, UserID: 101}, nil
				}
				if userID == 202 {
					return &domain.Detailer{ID: 2, UserID: 202}, nil
				}
				return nil, detailerRepo.ErrDetailerNotFound
			},
		},
		nopLogger{},
	)

	return svc, repo
}

func TestGetByID_Success(t *testing.T) {
	svc, _ := newTestService(testJob(domain.StatusAccepted))

	resp, err := svc.GetByID(context.Background(), 10, 101)

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "ref-10", resp.BookingReference)
	assert.Equal(t, "accepted", resp.Status)
	assert.Equal(t, "2026-09-14", resp.AppointmentDate)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(nil)

	resp, err := svc.GetByID(context.Background(), 10, 101)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrJobNotFound))
}

func TestGetByID_AccessDenied(t *testing.T) {
	svc, _ := newTestService(testJob(domain.StatusAccepted))

	// Детейлер id=2 не назначен на работу
	resp, err := svc.GetByID(context.Background(), 10, 202)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrAccessDenied))
}

func TestGetByID_NonDetailerDenied(t *testing.T) {
	svc, _ := newTestService(testJob(domain.StatusAccepted))

	resp, err := svc.GetByID(context.Background(), 10, 999)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrAccessDenied))
}

func TestGetDetailerJobs_Success(t *testing.T) {
	svc, repo := newTestService(testJob(domain.StatusPending))

	var gotFilter domain.DetailerJobsFilter
	repo.getByDetailerWithFilter = func(ctx context.Context, filter domain.DetailerJobsFilter) ([]*domain.Job, error) {
		gotFilter = filter
		return []*domain.Job{testJob(domain.StatusPending)}, nil
	}

	status := "pending"
	resp, err := svc.GetDetailerJobs(context.Background(), &models.GetDetailerJobsRequest{
		UserID:     101,
		DetailerID: 1,
		Status:     &status,
	})

	require.NoError(t, err)
	require.Len(t, resp.Jobs, 1)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, domain.StatusPending, *gotFilter.Status)
}

func TestGetDetailerJobs_ForeignCalendarDenied(t *testing.T) {
	svc, _ := newTestService(testJob(domain.StatusPending))

	resp, err := svc.GetDetailerJobs(context.Background(), &models.GetDetailerJobsRequest{
		UserID:     202,
		DetailerID: 1,
	})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrAccessDenied))
}

func TestGetDetailerJobs_InvalidStatusFilter(t *testing.T) {
	svc, _ := newTestService(testJob(domain.StatusPending))

	status := "done"
	resp, err := svc.GetDetailerJobs(context.Background(), &models.GetDetailerJobsRequest{
		UserID:     101,
		DetailerID: 1,
		Status:     &status,
	})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestCancel_Success(t *testing.T) {
	svc, repo := newTestService(testJob(domain.StatusPending))

	var gotReason string
	repo.cancel = func(ctx context.Context, id int64, reason string) error {
		gotReason = reason
		return nil
	}

	err := svc.Cancel(context.Background(), 10, &models.CancelJobRequest{
		UserID:             101,
		CancellationReason: "client asked to reschedule",
	})

	require.NoError(t, err)
	assert.Equal(t, "client asked to reschedule", gotReason)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc, _ := newTestService(testJob(domain.StatusPending))

	err := svc.Cancel(context.Background(), 10, &models.CancelJobRequest{
		UserID:             101,
		CancellationReason: strings.Repeat("x", domain.MaxCancelReasonLength+1),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestCancel_FinishedJobRejected(t *testing.T) {
	for _, status := range []domain.JobStatus{domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled} {
		svc, _ := newTestService(testJob(status))

		err := svc.Cancel(context.Background(), 10, &models.CancelJobRequest{UserID: 101})

		require.Error(t, err, "status %s", status)
		assert.True(t, errors.Is(err, ErrCannotCancel))
	}
}

func TestUpdateStatus_AllowedTransitions(t *testing.T) {
	tests := []struct {
		from domain.JobStatus
		to   string
	}{
		{domain.StatusPending, "accepted"},
		{domain.StatusAccepted, "in_progress"},
		{domain.StatusInProgress, "completed"},
	}

	for _, tt := range tests {
		svc, _ := newTestService(testJob(tt.from))

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: 101,
			Status: tt.to,
		})

		require.NoError(t, err, "%s → %s", tt.from, tt.to)
	}
}

func TestUpdateStatus_ForbiddenTransitions(t *testing.T) {
	tests := []struct {
		from domain.JobStatus
		to   string
	}{
		{domain.StatusPending, "completed"},
		{domain.StatusPending, "in_progress"},
		{domain.StatusAccepted, "completed"},
		{domain.StatusCompleted, "pending"},
		{domain.StatusCancelled, "accepted"},
		// Отмена только через Cancel, чтобы зафиксировать причину
		{domain.StatusPending, "cancelled"},
	}

	for _, tt := range tests {
		svc, _ := newTestService(testJob(tt.from))

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: 101,
			Status: tt.to,
		})

		require.Error(t, err, "%s → %s", tt.from, tt.to)
		assert.True(t, errors.Is(err, ErrInvalidTransition))
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, _ := newTestService(testJob(domain.StatusPending))

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 101,
		Status: "finished",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStatus))
}

package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	detailerRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/detailer"
	jobRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/job"
	"github.com/prisma-detailing/DetailingService/internal/service/jobs/models"
)

// Service сервис для работы с заявками на детейлинг
type Service struct {
	jobRepo      JobRepository
	detailerRepo DetailerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса работ
func NewService(
	jobRepo JobRepository,
	detailerRepo DetailerRepository,
	logger Logger,
) *Service {
	return &Service{
		jobRepo:      jobRepo,
		detailerRepo: detailerRepo,
		logger:       logger,
	}
}

// GetByID получает работу по ID
// Доступ только у детейлера, на которого назначена работа
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.JobResponse, error) {
	s.logger.Info("GetByID: fetching job id=%d for user=%d", id, userID)

	j, err := s.getJob(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkDetailerAccess(ctx, j, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to job id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched job id=%d", id)
	return models.FromDomainJob(j), nil
}

// GetDetailerJobs получает работы детейлера с гибкой фильтрацией
// Детейлер видит только собственные работы
//
// Примеры использования:
// - Все работы: GetDetailerJobs(ctx, &GetDetailerJobsRequest{DetailerID: 1, UserID: 101})
// - Работы на дату: StartDate и EndDate указывают на одну дату
// - Только принятые: указать Status = "accepted"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) GetDetailerJobs(ctx context.Context, req *models.GetDetailerJobsRequest) (*models.JobListResponse, error) {
	s.logger.Info("GetDetailerJobs: fetching jobs for detailer=%d, user=%d", req.DetailerID, req.UserID)

	detailer, err := s.getDetailerByUser(ctx, req.UserID, "GetDetailerJobs")
	if err != nil {
		return nil, err
	}

	if detailer.ID != req.DetailerID {
		s.logger.Warn("GetDetailerJobs: user=%d is not detailer=%d", req.UserID, req.DetailerID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDetailerJobs: invalid filter for detailer=%d: %v", req.DetailerID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	jobs, err := s.jobRepo.GetByDetailerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetDetailerJobs: repository error for detailer=%d: %v", req.DetailerID, err)
		return nil, fmt.Errorf("%w: GetDetailerJobs - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDetailerJobs: successfully fetched %d jobs for detailer=%d", len(jobs), req.DetailerID)
	return models.FromDomainJobList(jobs), nil
}

// Cancel отменяет работу
// Отменить может только назначенный детейлер, и только pending/accepted работу
func (s *Service) Cancel(ctx context.Context, jobID int64, req *models.CancelJobRequest) error {
	s.logger.Info("Cancel: cancelling job id=%d by user=%d", jobID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancelReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for job id=%d", jobID)
		return fmt.Errorf("%w: cancellationReason must not exceed %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	j, err := s.getJob(ctx, jobID, "Cancel")
	if err != nil {
		return err
	}

	if err := s.checkDetailerAccess(ctx, j, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel job id=%d", req.UserID, jobID)
		return err
	}

	if !j.CanBeCancelled() {
		s.logger.Warn("Cancel: job id=%d cannot be cancelled, status=%s", jobID, j.Status)
		return ErrCannotCancel
	}

	if err := s.jobRepo.Cancel(ctx, jobID, req.CancellationReason); err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			s.logger.Warn("Cancel: job id=%d not found during cancellation", jobID)
			return ErrJobNotFound
		}
		s.logger.Error("Cancel: repository error for job id=%d: %v", jobID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled job id=%d", jobID)
	return nil
}

// UpdateStatus обновляет статус работы
// Доступно только назначенному детейлеру, переходы ограничены жизненным циклом:
// pending → accepted, accepted → in_progress, in_progress → completed
// Отмена идёт через Cancel, чтобы сохранить причину
func (s *Service) UpdateStatus(ctx context.Context, jobID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating job id=%d to status=%s by user=%d", jobID, req.Status, req.UserID)

	j, err := s.getJob(ctx, jobID, "UpdateStatus")
	if err != nil {
		return err
	}

	if err := s.checkDetailerAccess(ctx, j, req.UserID); err != nil {
		s.logger.Warn("UpdateStatus: access denied for user=%d to job id=%d", req.UserID, jobID)
		return err
	}

	newStatus, err := models.ToDomainJobStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for job id=%d", req.Status, jobID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if !isAllowedTransition(j.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s → %s not allowed for job id=%d", j.Status, newStatus, jobID)
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, j.Status, newStatus)
	}

	if err := s.jobRepo.UpdateStatus(ctx, jobID, newStatus); err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			s.logger.Warn("UpdateStatus: job id=%d not found during update", jobID)
			return ErrJobNotFound
		}
		s.logger.Error("UpdateStatus: repository error for job id=%d: %v", jobID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated job id=%d to status=%s", jobID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getJob(ctx context.Context, id int64, op string) (*domain.Job, error) {
	j, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			s.logger.Warn("%s: job id=%d not found", op, id)
			return nil, ErrJobNotFound
		}
		s.logger.Error("%s: repository error for job id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return j, nil
}

func (s *Service) getDetailerByUser(ctx context.Context, userID int64, op string) (*domain.Detailer, error) {
	detailer, err := s.detailerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, detailerRepo.ErrDetailerNotFound) {
			s.logger.Warn("%s: user=%d is not a detailer", op, userID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("%s: failed to get detailer for user=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - failed to get detailer: %v", ErrInternal, op, err)
	}
	return detailer, nil
}

// checkDetailerAccess проверяет, что пользователь - детейлер, назначенный на работу
func (s *Service) checkDetailerAccess(ctx context.Context, j *domain.Job, userID int64) error {
	if j.DetailerID == nil {
		return ErrAccessDenied
	}

	detailer, err := s.getDetailerByUser(ctx, userID, "checkDetailerAccess")
	if err != nil {
		return err
	}

	if detailer.ID != *j.DetailerID {
		return ErrAccessDenied
	}

	return nil
}

// isAllowedTransition проверяет допустимость перехода статуса
func isAllowedTransition(from, to domain.JobStatus) bool {
	switch from {
	case domain.StatusPending:
		return to == domain.StatusAccepted
	case domain.StatusAccepted:
		return to == domain.StatusInProgress
	case domain.StatusInProgress:
		return to == domain.StatusCompleted
	default:
		return false
	}
}

package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	detailerRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/detailer"
	"github.com/prisma-detailing/DetailingService/internal/service/availability/models"
)

// Service сервис для управления окнами доступности детейлеров
type Service struct {
	availabilityRepo AvailabilityRepository
	detailerRepo     DetailerRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	detailerRepo DetailerRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		detailerRepo:     detailerRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// SetForDate заменяет окна доступности детейлера на дату
// Замена атомарна: старые окна удаляются и новые вставляются в одной транзакции
func (s *Service) SetForDate(ctx context.Context, req *models.SetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("SetForDate: setting %d windows for detailer=%d, date=%s",
		len(req.Windows), req.DetailerID, req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.checkOwnership(ctx, req.UserID, req.DetailerID, "SetForDate"); err != nil {
		return nil, err
	}

	windows := make([]*domain.AvailabilityWindow, 0, len(req.Windows))
	for _, input := range req.Windows {
		windows = append(windows, input.ToDomainWindow(req.DetailerID, req.Date))
	}

	if err := validateWindows(windows); err != nil {
		s.logger.Warn("SetForDate: window validation failed for detailer=%d: %v", req.DetailerID, err)
		return nil, err
	}

	var saved []*domain.AvailabilityWindow
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		result, err := s.availabilityRepo.ReplaceForDate(txCtx, req.DetailerID, req.Date, windows)
		if err != nil {
			return fmt.Errorf("%w: SetForDate - repository error: %v", ErrInternal, err)
		}
		saved = result
		return nil
	})
	if err != nil {
		s.logger.Error("SetForDate: failed to replace windows for detailer=%d: %v", req.DetailerID, err)
		return nil, err
	}

	s.logger.Info("SetForDate: successfully saved %d windows for detailer=%d", len(saved), req.DetailerID)
	return models.FromDomainWindows(req.DetailerID, req.Date, saved), nil
}

// GetForDate получает окна доступности детейлера на дату
func (s *Service) GetForDate(ctx context.Context, req *models.GetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetForDate: fetching windows for detailer=%d, date=%s",
		req.DetailerID, req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.checkOwnership(ctx, req.UserID, req.DetailerID, "GetForDate"); err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.GetByDetailerAndDate(ctx, req.DetailerID, req.Date)
	if err != nil {
		s.logger.Error("GetForDate: repository error for detailer=%d: %v", req.DetailerID, err)
		return nil, fmt.Errorf("%w: GetForDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetForDate: successfully fetched %d windows for detailer=%d", len(windows), req.DetailerID)
	return models.FromDomainWindows(req.DetailerID, req.Date, windows), nil
}

// SetActive включает или выключает видимость детейлера в подборе слотов
// Выключенный детейлер не участвует в расчетах, но сохраняет свои работы и окна
func (s *Service) SetActive(ctx context.Context, req *models.SetActiveRequest) error {
	s.logger.Info("SetActive: setting is_active=%t for detailer=%d by user=%d",
		req.IsActive, req.DetailerID, req.UserID)

	if err := s.checkOwnership(ctx, req.UserID, req.DetailerID, "SetActive"); err != nil {
		return err
	}

	if err := s.detailerRepo.SetActive(ctx, req.DetailerID, req.IsActive); err != nil {
		if errors.Is(err, detailerRepo.ErrDetailerNotFound) {
			s.logger.Warn("SetActive: detailer=%d not found", req.DetailerID)
			return ErrDetailerNotFound
		}
		s.logger.Error("SetActive: repository error for detailer=%d: %v", req.DetailerID, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetActive: detailer=%d is now is_active=%t", req.DetailerID, req.IsActive)
	return nil
}

// Вспомогательные методы

// checkOwnership проверяет, что пользователь управляет собственным календарем
func (s *Service) checkOwnership(ctx context.Context, userID, detailerID int64, op string) error {
	detailer, err := s.detailerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, detailerRepo.ErrDetailerNotFound) {
			s.logger.Warn("%s: user=%d is not a detailer", op, userID)
			return ErrAccessDenied
		}
		s.logger.Error("%s: failed to get detailer for user=%d: %v", op, userID, err)
		return fmt.Errorf("%w: %s - failed to get detailer: %v", ErrInternal, op, err)
	}

	if detailer.ID != detailerID {
		s.logger.Warn("%s: user=%d is not detailer=%d", op, userID, detailerID)
		return ErrAccessDenied
	}

	return nil
}

// validateWindows проверяет окна одной даты: корректные времена,
// конец строго позже начала, открытые окна не пересекаются
func validateWindows(windows []*domain.AvailabilityWindow) error {
	ranges := make([]domain.TimeRange, 0, len(windows))
	for _, w := range windows {
		if err := w.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid start time %q", ErrInvalidWindow, w.StartTime)
		}
		if err := w.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid end time %q", ErrInvalidWindow, w.EndTime)
		}

		r, err := domain.NewTimeRange(w.StartTime, w.EndTime)
		if err != nil || r.IsEmpty() {
			return fmt.Errorf("%w: end time %q must be after start time %q", ErrInvalidWindow, w.EndTime, w.StartTime)
		}

		if w.IsAvailable {
			ranges = append(ranges, r)
		}
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	for i := 1; i < len(ranges); i++ {
		if ranges[i].Overlaps(ranges[i-1]) {
			return fmt.Errorf("%w: %s-%s overlaps %s-%s",
				ErrOverlappingWindows,
				ranges[i-1].StartString(), ranges[i-1].EndString(),
				ranges[i].StartString(), ranges[i].EndString())
		}
	}

	return nil
}

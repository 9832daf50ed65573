package get_timeslots

import (
	"context"
	"fmt"

	"github.com/prisma-detailing/DetailingService/internal/domain"
)

// UseCase use case расчета доступных таймслотов по локации
type UseCase struct {
	detailerRepo     DetailerRepository
	availabilityRepo AvailabilityRepository
	jobRepo          JobRepository
	policy           Policy
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	detailerRepo DetailerRepository,
	availabilityRepo AvailabilityRepository,
	jobRepo JobRepository,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		detailerRepo:     detailerRepo,
		availabilityRepo: availabilityRepo,
		jobRepo:          jobRepo,
		policy:           policy,
		logger:           logger,
	}
}

// Execute выполняет расчет слотов: фильтрация детейлеров по локации,
// вычитание занятых интервалов, нарезка и объединение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	parsed, err := parseRequest(req)
	if err != nil {
		uc.logger.Warn("GetTimeslots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetTimeslots: date=%s, duration=%d, country=%s, city=%s",
		parsed.Date.Format(domain.DateFormat), parsed.DurationMinutes, parsed.Country, parsed.City)

	// 2. Получаем активных детейлеров в локации
	detailers, err := uc.detailerRepo.GetActiveByLocation(ctx, parsed.Country, parsed.City)
	if err != nil {
		uc.logger.Error("GetTimeslots: failed to get detailers for %s/%s: %v", parsed.Country, parsed.City, err)
		return nil, fmt.Errorf("%w: failed to get detailers: %v", ErrInternal, err)
	}

	// Нет детейлеров в локации - пустой результат, не ошибка
	if len(detailers) == 0 {
		uc.logger.Info("GetTimeslots: no active detailers in %s/%s", parsed.Country, parsed.City)
		return &Response{
			Date:              parsed.Date,
			Slots:             []Slot{},
			EligibleDetailers: 0,
		}, nil
	}

	detailerIDs := make([]int64, 0, len(detailers))
	for _, detailer := range detailers {
		detailerIDs = append(detailerIDs, detailer.ID)
	}

	// 3. Получаем объявленные окна доступности на дату
	windows, err := uc.availabilityRepo.GetOpenWindows(ctx, detailerIDs, parsed.Date)
	if err != nil {
		uc.logger.Error("GetTimeslots: failed to get availability windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	open := openRangesByDetailer(detailers, windows, uc.policy)

	// 4. Получаем работы, занимающие календарь на эту дату
	jobs, err := uc.jobRepo.GetBlockingByDetailersAndDate(ctx, detailerIDs, parsed.Date)
	if err != nil {
		uc.logger.Error("GetTimeslots: failed to get jobs: %v", err)
		return nil, fmt.Errorf("%w: failed to get jobs: %v", ErrInternal, err)
	}

	occupied := occupiedRangesByDetailer(jobs, uc.policy.TravelBufferMinutes)

	// 5. Для каждого детейлера: вычитаем занятое, нарезаем слоты
	candidates := make([]domain.TimeRange, 0)
	for _, detailerID := range detailerIDs {
		free := domain.SubtractAll(open[detailerID], occupied[detailerID])
		for _, interval := range free {
			candidates = append(candidates, sliceSlots(interval, parsed.DurationMinutes)...)
		}
	}

	// 6. Объединяем слоты всех детейлеров
	slots := mergeCandidates(candidates)

	uc.logger.Info("GetTimeslots: %d slots from %d detailers for %s",
		len(slots), len(detailers), parsed.Date.Format(domain.DateFormat))

	return &Response{
		Date:              parsed.Date,
		Slots:             slots,
		EligibleDetailers: len(detailers),
	}, nil
}

package create_job

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	detailerRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/detailer"
	serviceTypeRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/servicetype"
	customerClient "github.com/prisma-detailing/DetailingService/internal/integrations/customerservice"
)

// UseCase use case для создания заявки на детейлинг
type UseCase struct {
	jobRepo          JobRepository
	detailerRepo     DetailerRepository
	serviceTypeRepo  ServiceTypeRepository
	availabilityRepo AvailabilityRepository
	customerClient   CustomerServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	policy           Policy
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	jobRepo JobRepository,
	detailerRepo DetailerRepository,
	serviceTypeRepo ServiceTypeRepository,
	availabilityRepo AvailabilityRepository,
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		jobRepo:          jobRepo,
		detailerRepo:     detailerRepo,
		serviceTypeRepo:  serviceTypeRepo,
		availabilityRepo: availabilityRepo,
		customerClient:   customerClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		policy:           policy,
		logger:           logger,
	}
}

// Execute выполняет use case создания заявки
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции,
// чтобы два клиента не заняли один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateJob: user=%d, service_type=%d, date=%s, time=%s",
		req.UserID, req.ServiceTypeID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateJob: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateJob: date validation failed: %v", err)
		return nil, err
	}

	// 3. Детейлер существует и активен (если заявка назначается сразу)
	if req.DetailerID != nil {
		detailer, err := uc.detailerRepo.GetByID(ctx, *req.DetailerID)
		if err != nil {
			if errors.Is(err, detailerRepo.ErrDetailerNotFound) {
				uc.logger.Warn("CreateJob: detailer id=%d not found", *req.DetailerID)
				return nil, ErrDetailerNotFound
			}
			uc.logger.Error("CreateJob: failed to get detailer id=%d: %v", *req.DetailerID, err)
			return nil, fmt.Errorf("%w: failed to get detailer: %v", ErrInternal, err)
		}
		if !detailer.IsActive {
			uc.logger.Warn("CreateJob: detailer id=%d is not active", *req.DetailerID)
			return nil, ErrDetailerNotAvailable
		}
	}

	// 4. Тип услуги: источник длительности, названия и цены
	serviceType, err := uc.serviceTypeRepo.GetByID(ctx, req.ServiceTypeID)
	if err != nil {
		if errors.Is(err, serviceTypeRepo.ErrServiceTypeNotFound) {
			uc.logger.Warn("CreateJob: service type id=%d not found", req.ServiceTypeID)
			return nil, ErrServiceTypeNotFound
		}
		uc.logger.Error("CreateJob: failed to get service type id=%d: %v", req.ServiceTypeID, err)
		return nil, fmt.Errorf("%w: failed to get service type: %v", ErrInternal, err)
	}

	// 5. Обогащаем контактные данные и автомобиль из CustomerService,
	// если клиент их не передал
	// Недоступность CustomerService не блокирует создание заявки,
	// но без имени и телефона заявку создать нельзя
	clientName, clientPhone, err := uc.resolveClient(ctx, req)
	if err != nil {
		uc.logger.Warn("CreateJob: client resolution failed for user id=%d: %v", req.UserID, err)
		return nil, err
	}
	vehicle := uc.resolveVehicle(ctx, req)

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	appointment := appointmentRange(startMinutes, serviceType.DurationMinutes)

	var result *domain.Job

	// 6. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if req.DetailerID != nil {
			if err := uc.checkDetailerAvailability(txCtx, *req.DetailerID, req, appointment); err != nil {
				return err
			}
		}

		j := &domain.Job{
			BookingReference:    uuid.NewString(),
			DetailerID:          req.DetailerID,
			ServiceTypeID:       req.ServiceTypeID,
			ClientName:          clientName,
			ClientPhone:         clientPhone,
			VehicleRegistration: vehicle.Registration,
			VehicleMake:         vehicle.Make,
			VehicleModel:        vehicle.Model,
			VehicleColor:        req.VehicleColor,
			VehicleYear:         req.VehicleYear,
			Address:             req.Address,
			City:                req.City,
			PostCode:            req.PostCode,
			Country:             req.Country,
			Latitude:            req.Latitude,
			Longitude:           req.Longitude,
			Addon1:              req.Addon1,
			Addon2:              req.Addon2,
			Addon3:              req.Addon3,
			AppointmentDate:     req.Date,
			AppointmentTime:     req.StartTime,
			// Денормализация данных услуги
			ServiceName:     serviceType.Name,
			ServicePrice:    serviceType.Price,
			DurationMinutes: serviceType.DurationMinutes,
			Status:          domain.StatusPending,
			OwnerNote:       req.OwnerNote,
		}

		created, err := uc.jobRepo.Create(txCtx, j)
		if err != nil {
			uc.logger.Error("CreateJob: failed to create job: %v", err)
			return fmt.Errorf("%w: failed to create job: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateJob: successfully created job id=%d, reference=%s", result.ID, result.BookingReference)

	return &Response{
		ID:                  result.ID,
		BookingReference:    result.BookingReference,
		DetailerID:          result.DetailerID,
		ServiceTypeID:       result.ServiceTypeID,
		AppointmentDate:     result.AppointmentDate,
		AppointmentTime:     result.AppointmentTime,
		Status:              string(result.Status),
		ClientName:          result.ClientName,
		ClientPhone:         result.ClientPhone,
		VehicleRegistration: result.VehicleRegistration,
		VehicleMake:         result.VehicleMake,
		VehicleModel:        result.VehicleModel,
		Address:             result.Address,
		City:                result.City,
		PostCode:            result.PostCode,
		Country:             result.Country,
		ServiceName:         result.ServiceName,
		ServicePrice:        result.ServicePrice,
		DurationMinutes:     result.DurationMinutes,
		OwnerNote:           result.OwnerNote,
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}, nil
}

// resolveClient возвращает имя и телефон клиента из запроса либо из профиля
// в CustomerService. Если ни запрос, ни профиль их не дают - заявка невозможна
func (uc *UseCase) resolveClient(ctx context.Context, req *Request) (string, string, error) {
	name := req.ClientName
	phone := req.ClientPhone

	if name == "" || phone == "" {
		profile, err := uc.customerClient.GetProfile(ctx, req.UserID)
		if err != nil {
			uc.logger.Warn("CreateJob: profile lookup failed for user id=%d: %v", req.UserID, err)
		} else {
			if name == "" {
				name = profile.Name
			}
			if phone == "" {
				phone = profile.Phone
			}
		}
	}

	if name == "" {
		return "", "", fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if phone == "" {
		return "", "", fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	return name, phone, nil
}

// resolvedVehicle данные автомобиля после обогащения
type resolvedVehicle struct {
	Registration string
	Make         string
	Model        string
}

// resolveVehicle возвращает данные автомобиля из запроса либо из CustomerService
func (uc *UseCase) resolveVehicle(ctx context.Context, req *Request) resolvedVehicle {
	if req.VehicleRegistration != "" {
		return resolvedVehicle{
			Registration: req.VehicleRegistration,
			Make:         req.VehicleMake,
			Model:        req.VehicleModel,
		}
	}

	vehicle, err := uc.customerClient.GetSelectedVehicleWithGracefulDegradation(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, customerClient.ErrVehicleNotFound) {
			uc.logger.Info("CreateJob: user id=%d has no selected vehicle", req.UserID)
		} else {
			uc.logger.Warn("CreateJob: vehicle enrichment skipped for user id=%d: %v", req.UserID, err)
		}
		return resolvedVehicle{}
	}

	return resolvedVehicle{
		Registration: vehicle.Registration,
		Make:         vehicle.Make,
		Model:        vehicle.Model,
	}
}

// checkDetailerAvailability проверяет, что интервал заявки попадает в рабочие
// окна детейлера и не пересекается с его работами
// Вызывается внутри транзакции: чтение работ блокирует строки (FOR UPDATE)
func (uc *UseCase) checkDetailerAvailability(ctx context.Context, detailerID int64, req *Request, appointment domain.TimeRange) error {
	windows, err := uc.availabilityRepo.GetOpenWindows(ctx, []int64{detailerID}, req.Date)
	if err != nil {
		uc.logger.Error("CreateJob: failed to get availability windows: %v", err)
		return fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	open := make([]domain.TimeRange, 0, len(windows))
	for _, window := range windows {
		if r, ok := window.Range(); ok {
			open = append(open, r)
		}
	}

	// Без объявленных окон действует дефолтный рабочий день
	if len(windows) == 0 {
		if r, err := domain.NewTimeRange(uc.policy.DefaultOpenTime, uc.policy.DefaultCloseTime); err == nil && !r.IsEmpty() {
			open = append(open, r)
		}
	}

	if !fitsOpenWindows(appointment, open) {
		uc.logger.Warn("CreateJob: appointment %s-%s outside working hours of detailer id=%d",
			appointment.StartString(), appointment.EndString(), detailerID)
		return ErrOutsideWorkingHours
	}

	jobs, err := uc.jobRepo.GetBlockingByDetailersAndDate(ctx, []int64{detailerID}, req.Date)
	if err != nil {
		uc.logger.Error("CreateJob: failed to get jobs: %v", err)
		return fmt.Errorf("%w: failed to get jobs: %v", ErrInternal, err)
	}

	if hasConflict(appointment, jobs, uc.policy.TravelBufferMinutes) {
		uc.logger.Warn("CreateJob: slot %s-%s conflicts with another job of detailer id=%d",
			appointment.StartString(), appointment.EndString(), detailerID)
		return ErrSlotConflict
	}

	return nil
}

package create_job

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
	serviceTypeRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/servicetype"
	"github.com/prisma-detailing/DetailingService/internal/integrations/customerservice"
	"github.com/prisma-detailing/DetailingService/pkg/ptr"
	"github.com/prisma-detailing/DetailingService/pkg/types"
)

type stubJobRepo struct {
	create                        func(ctx context.Context, j *domain.Job) (*domain.Job, error)
	getBlockingByDetailersAndDate func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error)
}

func (s *stubJobRepo) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	return s.create(ctx, j)
}

func (s *stubJobRepo) GetBlockingByDetailersAndDate(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error) {
	return s.getBlockingByDetailersAndDate(ctx, detailerIDs, date)
}

type stubDetailerRepo struct {
	getByID func(ctx context.Context, id int64) (*domain.Detailer, error)
}

func (s *stubDetailerRepo) GetByID(ctx context.Context, id int64) (*domain.Detailer, error) {
	return s.getByID(ctx, id)
}

type stubServiceTypeRepo struct {
	getByID func(ctx context.Context, id int64) (*domain.ServiceType, error)
}

func (s *stubServiceTypeRepo) GetByID(ctx context.Context, id int64) (*domain.ServiceType, error) {
	return s.getByID(ctx, id)
}

type stubAvailabilityRepo struct {
	getOpenWindows func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error)
}

func (s *stubAvailabilityRepo) GetOpenWindows(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
	return s.getOpenWindows(ctx, detailerIDs, date)
}

type stubCustomerClient struct {
	getProfile         func(ctx context.Context, userID int64) (*customerservice.Profile, error)
	getSelectedVehicle func(ctx context.Context, userID int64) (*customerservice.Vehicle, error)
}

func (s *stubCustomerClient) GetProfile(ctx context.Context, userID int64) (*customerservice.Profile, error) {
	if s.getProfile == nil {
		return nil, customerservice.ErrProfileNotFound
	}
	return s.getProfile(ctx, userID)
}

func (s *stubCustomerClient) GetSelectedVehicleWithGracefulDegradation(ctx context.Context, userID int64) (*customerservice.Vehicle, error) {
	return s.getSelectedVehicle(ctx, userID)
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type useCaseFixture struct {
	jobRepo          *stubJobRepo
	detailerRepo     *stubDetailerRepo
	serviceTypeRepo  *stubServiceTypeRepo
	availabilityRepo *stubAvailabilityRepo
	customerClient   *stubCustomerClient
	uc               *UseCase
}

func newFixture() *useCaseFixture {
	f := &useCaseFixture{
		jobRepo: &stubJobRepo{
			create: func(ctx context.Context, j *domain.Job) (*domain.Job, error) {
				created := *j
				created.ID = 42
				created.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
				created.UpdatedAt = created.CreatedAt
				return &created, nil
			},
			getBlockingByDetailersAndDate: func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error) {
				return nil, nil
			},
		},
		detailerRepo: &stubDetailerRepo{
			getByID: func(ctx context.Context, id int64) (*domain.Detailer, error) {
				return &domain.Detailer{ID: id, IsActive: true, City: "London", Country: "UK"}, nil
			},
		},
		serviceTypeRepo: &stubServiceTypeRepo{
			getByID: func(ctx context.Context, id int64) (*domain.ServiceType, error) {
				return &domain.ServiceType{
					ID:              id,
					Name:            "Full Valet",
					WashType:        domain.WashTypeSteam,
					DurationMinutes: 90,
					Price:           75.0,
				}, nil
			},
		},
		availabilityRepo: &stubAvailabilityRepo{
			getOpenWindows: func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
				return nil, nil
			},
		},
		customerClient: &stubCustomerClient{
			getSelectedVehicle: func(ctx context.Context, userID int64) (*customerservice.Vehicle, error) {
				return &customerservice.Vehicle{Registration: "AB12 CDE", Make: "BMW", Model: "320d"}, nil
			},
		},
	}

	f.uc = NewUseCase(
		f.jobRepo,
		f.detailerRepo,
		f.serviceTypeRepo,
		f.availabilityRepo,
		f.customerClient,
		inlineTxManager{},
		Policy{
			DefaultOpenTime:     types.TimeString(domain.DefaultOpenTime),
			DefaultCloseTime:    types.TimeString(domain.DefaultCloseTime),
			TravelBufferMinutes: domain.DefaultTravelBufferMinutes,
		},
		nopLogger{},
	)
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}

	return f
}

func validCreateRequest() *Request {
	return &Request{
		UserID:        7,
		DetailerID:    ptr.Ptr(int64(1)),
		ServiceTypeID: 3,
		ClientName:    "Jane Smith",
		ClientPhone:   "+447700900123",
		Address:       "10 High Street",
		City:          "London",
		PostCode:      "SW1A 1AA",
		Country:       "UK",
		Date:          time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("10:00"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validCreateRequest())

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int64(42), resp.ID)
	assert.NotEmpty(t, resp.BookingReference)
	assert.Equal(t, "pending", resp.Status)
	// Денормализация данных услуги
	assert.Equal(t, "Full Valet", resp.ServiceName)
	assert.Equal(t, 75.0, resp.ServicePrice)
	assert.Equal(t, 90, resp.DurationMinutes)
	// Обогащение данными автомобиля из CustomerService
	assert.Equal(t, "AB12 CDE", resp.VehicleRegistration)
	assert.Equal(t, "BMW", resp.VehicleMake)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero user", func(req *Request) { req.UserID = 0 }},
		{"negative detailer", func(req *Request) { req.DetailerID = ptr.Ptr(int64(-1)) }},
		{"zero service type", func(req *Request) { req.ServiceTypeID = 0 }},
		{"empty client name", func(req *Request) { req.ClientName = "" }},
		{"empty phone", func(req *Request) { req.ClientPhone = "" }},
		{"empty address", func(req *Request) { req.Address = "" }},
		{"zero date", func(req *Request) { req.Date = time.Time{} }},
		{"empty start time", func(req *Request) { req.StartTime = "" }},
		{"malformed start time", func(req *Request) { req.StartTime = "25:99" }},
		{"owner note too long", func(req *Request) { req.OwnerNote = ptr.Ptr(strings.Repeat("x", domain.MaxOwnerNoteLength+1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			resp, err := f.uc.Execute(context.Background(), req)

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	resp, err := f.uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestExecute_DetailerNotFound(t *testing.T) {
	f := newFixture()
	f.detailerRepo.getByID = func(ctx context.Context, id int64) (*domain.Detailer, error) {
		return nil, detailerRepo.ErrDetailerNotFound
	}

	resp, err := f.uc.Execute(context.Background(), validCreateRequest())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrDetailerNotFound))
}

func TestExecute_DetailerInactive(t *testing.T) {
	f := newFixture()
	f.detailerRepo.getByID = func(ctx context.Context, id int64) (*domain.Detailer, error) {
		return &domain.Detailer{ID: id, IsActive: false}, nil
	}

	resp, err := f.uc.Execute(context.Background(), validCreateRequest())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrDetailerNotAvailable))
}

func TestExecute_ServiceTypeNotFound(t *testing.T) {
	f := newFixture()
	f.serviceTypeRepo.getByID = func(ctx context.Context, id int64) (*domain.ServiceType, error) {
		return nil, serviceTypeRepo.ErrServiceTypeNotFound
	}

	resp, err := f.uc.Execute(context.Background(), validCreateRequest())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrServiceTypeNotFound))
}

func TestExecute_OutsideDeclaredWindows(t *testing.T) {
	f := newFixture()
	f.availabilityRepo.getOpenWindows = func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
		return []*domain.AvailabilityWindow{
			{
				DetailerID:  1,
				StartTime:   types.TimeString("14:00"),
				EndTime:     types.TimeString("18:00"),
				IsAvailable: true,
			},
		}, nil
	}

	// Заявка на 10:00 не попадает в окно 14:00-18:00
	resp, err := f.uc.Execute(context.Background(), validCreateRequest())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrOutsideWorkingHours))
}

func TestExecute_OutsideDefaultHours(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	req.StartTime = types.TimeString("05:00")

	resp, err := f.uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrOutsideWorkingHours))
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture()
	f.jobRepo.getBlockingByDetailersAndDate = func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error) {
		// Работа в 11:30 на 60 минут с буфером 30 занимает [11:00, 13:00):
		// заявка 10:00 + 90 минут = [10:00, 11:30) пересекается
		return []*domain.Job{
			{
				DetailerID:      ptr.Ptr(int64(1)),
				AppointmentTime: types.TimeString("11:30"),
				DurationMinutes: 60,
				Status:          domain.StatusAccepted,
			},
		}, nil
	}

	resp, err := f.uc.Execute(context.Background(), validCreateRequest())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrSlotConflict))
}

func TestExecute_BoundaryTouchingJobDoesNotConflict(t *testing.T) {
	f := newFixture()
	f.jobRepo.getBlockingByDetailersAndDate = func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error) {
		// Занято [12:00, 14:00): заявка [10:00, 11:30) не пересекается,
		// работа в 12:30 на 60 минут с буфером 30
		return []*domain.Job{
			{
				DetailerID:      ptr.Ptr(int64(1)),
				AppointmentTime: types.TimeString("12:30"),
				DurationMinutes: 60,
				Status:          domain.StatusPending,
			},
		}, nil
	}

	resp, err := f.uc.Execute(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestExecute_UnassignedJobSkipsAvailabilityCheck(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	req.DetailerID = nil

	f.availabilityRepo.getOpenWindows = func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
		t.Fatal("availability must not be checked for unassigned job")
		return nil, nil
	}

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Nil(t, resp.DetailerID)
}

func TestExecute_VehicleEnrichmentDegradesGracefully(t *testing.T) {
	f := newFixture()
	f.customerClient.getSelectedVehicle = func(ctx context.Context, userID int64) (*customerservice.Vehicle, error) {
		return nil, customerservice.ErrServiceDegraded
	}

	resp, err := f.uc.Execute(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Empty(t, resp.VehicleRegistration)
}

func TestExecute_ExplicitVehicleSkipsEnrichment(t *testing.T) {
	f := newFixture()
	f.customerClient.getSelectedVehicle = func(ctx context.Context, userID int64) (*customerservice.Vehicle, error) {
		t.Fatal("customer service must not be called when vehicle is provided")
		return nil, nil
	}

	req := validCreateRequest()
	req.VehicleRegistration = "XY99 ZZZ"
	req.VehicleMake = "Audi"
	req.VehicleModel = "A4"

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "XY99 ZZZ", resp.VehicleRegistration)
	assert.Equal(t, "Audi", resp.VehicleMake)
}

func TestExecute_ProfileFillsClientFields(t *testing.T) {
	f := newFixture()
	f.customerClient.getProfile = func(ctx context.Context, userID int64) (*customerservice.Profile, error) {
		return &customerservice.Profile{UserID: userID, Name: "John Doe", Phone: "+447700900456"}, nil
	}

	req := validCreateRequest()
	req.ClientName = ""
	req.ClientPhone = ""

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "John Doe", resp.ClientName)
	assert.Equal(t, "+447700900456", resp.ClientPhone)
}

func TestExecute_ExplicitClientFieldsWinOverProfile(t *testing.T) {
	f := newFixture()
	f.customerClient.getProfile = func(ctx context.Context, userID int64) (*customerservice.Profile, error) {
		t.Fatal("profile must not be fetched when client fields are provided")
		return nil, nil
	}

	resp, err := f.uc.Execute(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", resp.ClientName)
}

func TestExecute_ProfileUnavailableRequiresExplicitFields(t *testing.T) {
	f := newFixture()
	f.customerClient.getProfile = func(ctx context.Context, userID int64) (*customerservice.Profile, error) {
		return nil, customerservice.ErrInternal
	}

	req := validCreateRequest()
	req.ClientName = ""

	resp, err := f.uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

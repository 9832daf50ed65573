package get_timeslots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	"github.com/prisma-detailing/DetailingService/pkg/ptr"
	"github.com/prisma-detailing/DetailingService/pkg/types"
)

type stubDetailerRepo struct {
	getActiveByLocation func(ctx context.Context, country, city string) ([]*domain.Detailer, error)
}

func (s *stubDetailerRepo) GetActiveByLocation(ctx context.Context, country, city string) ([]*domain.Detailer, error) {
	return s.getActiveByLocation(ctx, country, city)
}

type stubAvailabilityRepo struct {
	getOpenWindows func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error)
}

func (s *stubAvailabilityRepo) GetOpenWindows(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
	return s.getOpenWindows(ctx, detailerIDs, date)
}

type stubJobRepo struct {
	getBlockingByDetailersAndDate func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error)
}

func (s *stubJobRepo) GetBlockingByDetailersAndDate(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error) {
	return s.getBlockingByDetailersAndDate(ctx, detailerIDs, date)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func defaultPolicy() Policy {
	return Policy{
		DefaultOpenTime:     types.TimeString(domain.DefaultOpenTime),
		DefaultCloseTime:    types.TimeString(domain.DefaultCloseTime),
		TravelBufferMinutes: domain.DefaultTravelBufferMinutes,
	}
}

func newTestUseCase(
	detailers []*domain.Detailer,
	windows []*domain.AvailabilityWindow,
	jobs []*domain.Job,
) *UseCase {
	return NewUseCase(
		&stubDetailerRepo{
			getActiveByLocation: func(ctx context.Context, country, city string) ([]*domain.Detailer, error) {
				return detailers, nil
			},
		},
		&stubAvailabilityRepo{
			getOpenWindows: func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
				return windows, nil
			},
		},
		&stubJobRepo{
			getBlockingByDetailersAndDate: func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error) {
				return jobs, nil
			},
		},
		defaultPolicy(),
		nopLogger{},
	)
}

func testDetailer(id int64) *domain.Detailer {
	return &domain.Detailer{
		ID:       id,
		UserID:   id + 100,
		City:     "London",
		Country:  "UK",
		IsActive: true,
	}
}

func testWindow(detailerID int64, start, end string) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		DetailerID:  detailerID,
		Date:        time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsAvailable: true,
	}
}

func testJob(detailerID int64, appointmentTime string, durationMinutes int) *domain.Job {
	return &domain.Job{
		ID:              1,
		DetailerID:      ptr.Ptr(detailerID),
		AppointmentDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		AppointmentTime: types.TimeString(appointmentTime),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusAccepted,
	}
}

func validRequest() *Request {
	return &Request{
		Date:            "2026-09-14",
		ServiceDuration: "60",
		Country:         "UK",
		City:            "London",
	}
}

func TestExecute_MissingParameters(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	tests := []struct {
		name    string
		request *Request
		mention []string
	}{
		{
			name:    "missing date",
			request: &Request{ServiceDuration: "60", Country: "UK", City: "London"},
			mention: []string{"date"},
		},
		{
			name:    "missing service_duration",
			request: &Request{Date: "2026-09-14", Country: "UK", City: "London"},
			mention: []string{"service_duration"},
		},
		{
			name:    "missing country",
			request: &Request{Date: "2026-09-14", ServiceDuration: "60", City: "London"},
			mention: []string{"country"},
		},
		{
			name:    "missing city",
			request: &Request{Date: "2026-09-14", ServiceDuration: "60", Country: "UK"},
			mention: []string{"city"},
		},
		{
			name:    "all missing",
			request: &Request{},
			mention: []string{"date", "service_duration", "country", "city"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), tt.request)

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, ErrMissingField))
			for _, field := range tt.mention {
				assert.Contains(t, err.Error(), field)
			}
		})
	}
}

func TestExecute_InvalidDate(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	for _, date := range []string{"not-a-date", "14-09-2026", "2026-13-40"} {
		req := validRequest()
		req.Date = date

		resp, err := uc.Execute(context.Background(), req)

		require.Error(t, err, "date %q", date)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, ErrInvalidDate))
	}
}

func TestExecute_InvalidDuration(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	for _, duration := range []string{"abc", "0", "-30", "1.5", "5", "1000"} {
		req := validRequest()
		req.ServiceDuration = duration

		resp, err := uc.Execute(context.Background(), req)

		require.Error(t, err, "duration %q", duration)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, ErrInvalidDuration))
	}
}

func TestExecute_NoDetailersInLocation(t *testing.T) {
	uc := newTestUseCase([]*domain.Detailer{}, nil, nil)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 0, resp.EligibleDetailers)
}

func TestExecute_DefaultBusinessHours(t *testing.T) {
	// Детейлер без объявленных окон работает по дефолтному графику 06:00-21:00
	uc := newTestUseCase(
		[]*domain.Detailer{testDetailer(1)},
		[]*domain.AvailabilityWindow{},
		[]*domain.Job{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, resp.Slots, 15)
	assert.Equal(t, 1, resp.EligibleDetailers)
	assert.Equal(t, types.TimeString("06:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("07:00"), resp.Slots[0].EndTime)
	assert.Equal(t, types.TimeString("20:00"), resp.Slots[14].StartTime)
	assert.Equal(t, types.TimeString("21:00"), resp.Slots[14].EndTime)
	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
	}
}

func TestExecute_DeclaredWindowsOverrideDefaults(t *testing.T) {
	uc := newTestUseCase(
		[]*domain.Detailer{testDetailer(1)},
		[]*domain.AvailabilityWindow{testWindow(1, "09:00", "12:00")},
		[]*domain.Job{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[2].StartTime)
}

func TestExecute_SlotsAnchoredToWindowStart(t *testing.T) {
	// Окно 09:15-11:30: слоты 09:15 и 10:15, хвост 11:15-11:30 отбрасывается
	uc := newTestUseCase(
		[]*domain.Detailer{testDetailer(1)},
		[]*domain.AvailabilityWindow{testWindow(1, "09:15", "11:30")},
		[]*domain.Job{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:15"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:15"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("11:15"), resp.Slots[1].EndTime)
}

func TestExecute_BookedJobBlocksSlots(t *testing.T) {
	// Работа в 14:00 на 60 минут с буфером 30 занимает [13:30, 15:30):
	// при окне 09:00-18:00 слоты 13:00 и 14:00 недоступны, слот 15:30 появляется
	// после сдвига нарезки на начало второго свободного интервала
	uc := newTestUseCase(
		[]*domain.Detailer{testDetailer(1)},
		[]*domain.AvailabilityWindow{testWindow(1, "09:00", "18:00")},
		[]*domain.Job{testJob(1, "14:00", 60)},
	)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)

	starts := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		starts = append(starts, string(slot.StartTime))
	}

	// Свободно [09:00, 13:30) и [15:30, 18:00)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "15:30", "16:30"}, starts)
	assert.NotContains(t, starts, "14:00")
	assert.NotContains(t, starts, "13:00")
}

func TestExecute_CancelledJobDoesNotBlock(t *testing.T) {
	cancelled := testJob(1, "10:00", 60)
	cancelled.Status = domain.StatusCancelled

	uc := newTestUseCase(
		[]*domain.Detailer{testDetailer(1)},
		[]*domain.AvailabilityWindow{testWindow(1, "09:00", "12:00")},
		[]*domain.Job{cancelled},
	)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_MergesAndDeduplicatesAcrossDetailers(t *testing.T) {
	// Два детейлера с пересекающимися окнами: общие слоты не дублируются,
	// результат отсортирован по времени начала
	uc := newTestUseCase(
		[]*domain.Detailer{testDetailer(1), testDetailer(2)},
		[]*domain.AvailabilityWindow{
			testWindow(1, "09:00", "12:00"),
			testWindow(2, "11:00", "14:00"),
		},
		[]*domain.Job{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 2, resp.EligibleDetailers)

	starts := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		starts = append(starts, string(slot.StartTime))
	}
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "13:00"}, starts)
}

func TestExecute_JobOfOneDetailerKeepsOthersSlots(t *testing.T) {
	// Занятость одного детейлера не убирает слот, который может закрыть другой
	uc := newTestUseCase(
		[]*domain.Detailer{testDetailer(1), testDetailer(2)},
		[]*domain.AvailabilityWindow{
			testWindow(1, "10:00", "13:00"),
			testWindow(2, "10:00", "13:00"),
		},
		[]*domain.Job{testJob(1, "10:00", 60)},
	)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)

	starts := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		starts = append(starts, string(slot.StartTime))
	}
	assert.Contains(t, starts, "10:00")
	assert.Contains(t, starts, "11:00")
	assert.Contains(t, starts, "12:00")
}

func TestExecute_Deterministic(t *testing.T) {
	uc := newTestUseCase(
		[]*domain.Detailer{testDetailer(1), testDetailer(2)},
		[]*domain.AvailabilityWindow{
			testWindow(1, "08:30", "12:30"),
			testWindow(2, "09:00", "13:00"),
		},
		[]*domain.Job{testJob(2, "11:00", 90)},
	)

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_RepositoryErrors(t *testing.T) {
	repoErr := errors.New("connection refused")

	t.Run("detailer repo failure", func(t *testing.T) {
		uc := NewUseCase(
			&stubDetailerRepo{
				getActiveByLocation: func(ctx context.Context, country, city string) ([]*domain.Detailer, error) {
					return nil, repoErr
				},
			},
			nil, nil, defaultPolicy(), nopLogger{},
		)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, ErrInternal))
	})

	t.Run("availability repo failure", func(t *testing.T) {
		uc := NewUseCase(
			&stubDetailerRepo{
				getActiveByLocation: func(ctx context.Context, country, city string) ([]*domain.Detailer, error) {
					return []*domain.Detailer{testDetailer(1)}, nil
				},
			},
			&stubAvailabilityRepo{
				getOpenWindows: func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
					return nil, repoErr
				},
			},
			nil, defaultPolicy(), nopLogger{},
		)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, ErrInternal))
	})

	t.Run("job repo failure", func(t *testing.T) {
		uc := NewUseCase(
			&stubDetailerRepo{
				getActiveByLocation: func(ctx context.Context, country, city string) ([]*domain.Detailer, error) {
					return []*domain.Detailer{testDetailer(1)}, nil
				},
			},
			&stubAvailabilityRepo{
				getOpenWindows: func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
					return nil, nil
				},
			},
			&stubJobRepo{
				getBlockingByDetailersAndDate: func(ctx context.Context, detailerIDs []int64, date time.Time) ([]*domain.Job, error) {
					return nil, repoErr
				},
			},
			defaultPolicy(), nopLogger{},
		)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, ErrInternal))
	})
}

func TestExecute_DurationLongerThanAnyWindow(t *testing.T) {
	req := validRequest()
	req.ServiceDuration = "240"

	uc := newTestUseCase(
		[]*domain.Detailer{testDetailer(1)},
		[]*domain.AvailabilityWindow{testWindow(1, "09:00", "12:00")},
		[]*domain.Job{},
	)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 1, resp.EligibleDetailers)
}

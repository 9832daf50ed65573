package get_timeslots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getTimeslots "github.com/prisma-detailing/DetailingService/internal/usecase/get_timeslots"
	"github.com/prisma-detailing/DetailingService/pkg/types"
)

type stubUseCase struct {
	execute func(ctx context.Context, req *getTimeslots.Request) (*getTimeslots.Response, error)
}

func (s *stubUseCase) Execute(ctx context.Context, req *getTimeslots.Request) (*getTimeslots.Response, error) {
	return s.execute(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func doRequest(t *testing.T, h *Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	h := NewHandler(&stubUseCase{
		execute: func(ctx context.Context, req *getTimeslots.Request) (*getTimeslots.Response, error) {
			assert.Equal(t, "2026-09-14", req.Date)
			assert.Equal(t, "60", req.ServiceDuration)
			assert.Equal(t, "UK", req.Country)
			assert.Equal(t, "London", req.City)

			return &getTimeslots.Response{
				Date: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
				Slots: []getTimeslots.Slot{
					{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("10:00"), IsAvailable: true},
					{StartTime: types.TimeString("10:00"), EndTime: types.TimeString("11:00"), IsAvailable: true},
				},
				EligibleDetailers: 2,
			}, nil
		},
	}, nopLogger{})

	rec := doRequest(t, h, "/api/v1/timeslots?date=2026-09-14&service_duration=60&country=UK&city=London")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TimeslotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-14", resp.Date)
	assert.Equal(t, 2, resp.TotalSlots)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, "10:00", resp.Slots[0].EndTime)
	assert.True(t, resp.Slots[0].IsAvailable)
}

func TestHandle_NoDetailersReturns200WithError(t *testing.T) {
	h := NewHandler(&stubUseCase{
		execute: func(ctx context.Context, req *getTimeslots.Request) (*getTimeslots.Response, error) {
			return &getTimeslots.Response{
				Date:              time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
				Slots:             []getTimeslots.Slot{},
				EligibleDetailers: 0,
			}, nil
		},
	}, nopLogger{})

	rec := doRequest(t, h, "/api/v1/timeslots?date=2026-09-14&service_duration=60&country=UK&city=Nowhere")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp NoDetailersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No detailers available in this area", resp.Error)
	assert.Empty(t, resp.Slots)
}

func TestHandle_MissingParamsReturns400(t *testing.T) {
	// Валидация параметров идет через настоящий usecase
	uc := getTimeslots.NewUseCase(nil, nil, nil, getTimeslots.Policy{}, nopLogger{})
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(t, h, "/api/v1/timeslots?service_duration=60&country=UK&city=London")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp BadRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "date")
}

func TestHandle_InvalidDateReturns400(t *testing.T) {
	uc := getTimeslots.NewUseCase(nil, nil, nil, getTimeslots.Policy{}, nopLogger{})
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(t, h, "/api/v1/timeslots?date=tomorrow&service_duration=60&country=UK&city=London")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp BadRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestHandle_InternalErrorReturns500(t *testing.T) {
	h := NewHandler(&stubUseCase{
		execute: func(ctx context.Context, req *getTimeslots.Request) (*getTimeslots.Response, error) {
			return nil, getTimeslots.ErrInternal
		},
	}, nopLogger{})

	rec := doRequest(t, h, "/api/v1/timeslots?date=2026-09-14&service_duration=60&country=UK&city=London")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

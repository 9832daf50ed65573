package get_timeslots

import (
	"errors"
	"net/http"

	"github.com/prisma-detailing/DetailingService/internal/api/handlers"
	getTimeslots "github.com/prisma-detailing/DetailingService/internal/usecase/get_timeslots"
)

const (
	msgNoDetailers = "No detailers available in this area"
)

type Handler struct {
	useCase GetTimeslotsUseCase
	logger  Logger
}

func NewHandler(useCase GetTimeslotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/timeslots
// Query params: date (YYYY-MM-DD), service_duration (минуты), country, city - все обязательны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	useCaseReq := &getTimeslots.Request{
		Date:            query.Get("date"),
		ServiceDuration: query.Get("service_duration"),
		Country:         query.Get("country"),
		City:            query.Get("city"),
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getTimeslots.ErrMissingField),
			errors.Is(err, getTimeslots.ErrInvalidDate),
			errors.Is(err, getTimeslots.ErrInvalidDuration):
			h.logger.Warn("GET /timeslots - Invalid request: %v", err)
			handlers.RespondJSON(w, http.StatusBadRequest, BadRequestResponse{Error: err.Error()})

		default:
			h.logger.Error("GET /timeslots - Failed to compute slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Нет детейлеров в локации: 200 с пояснением, мобильный клиент
	// показывает пустую выдачу
	if result.EligibleDetailers == 0 {
		h.logger.Info("GET /timeslots - No detailers for country=%s, city=%s", useCaseReq.Country, useCaseReq.City)
		handlers.RespondJSON(w, http.StatusOK, NoDetailersResponse{
			Error: msgNoDetailers,
			Slots: []Timeslot{},
		})
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /timeslots - Slots computed successfully: date=%s, slots_count=%d",
		response.Date, response.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, response)
}

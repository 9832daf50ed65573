package create_job

import (
	"errors"
	"net/http"

	"github.com/prisma-detailing/DetailingService/internal/api/handlers"
	"github.com/prisma-detailing/DetailingService/internal/api/middleware"
	createJob "github.com/prisma-detailing/DetailingService/internal/usecase/create_job"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidDateOrTime    = "invalid appointment date or time, expected YYYY-MM-DD and HH:MM"
	msgMissingUserID        = "missing user ID"
	msgDetailerNotFound     = "detailer not found"
	msgDetailerNotAvailable = "detailer is not available"
	msgServiceTypeNotFound  = "service type not found"
	msgOutsideWorkingHours  = "appointment is outside detailer working hours"
	msgSlotConflict         = "selected time slot is no longer available"
	msgInvalidDate          = "appointment date cannot be in the past"
)

type Handler struct {
	useCase CreateJobUseCase
	logger  Logger
}

func NewHandler(useCase CreateJobUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/jobs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /jobs - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /jobs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /jobs - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createJob.ErrSlotConflict):
			h.logger.Warn("POST /jobs - Slot conflict: user_id=%d", userID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createJob.ErrDetailerNotFound):
			h.logger.Warn("POST /jobs - Detailer not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgDetailerNotFound)

		case errors.Is(err, createJob.ErrDetailerNotAvailable):
			h.logger.Warn("POST /jobs - Detailer not available: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgDetailerNotAvailable)

		case errors.Is(err, createJob.ErrServiceTypeNotFound):
			h.logger.Warn("POST /jobs - Service type not found: user_id=%d, service_type_id=%d", userID, req.ServiceTypeID)
			handlers.RespondNotFound(w, msgServiceTypeNotFound)

		case errors.Is(err, createJob.ErrOutsideWorkingHours):
			h.logger.Warn("POST /jobs - Outside working hours: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createJob.ErrInvalidDate):
			h.logger.Warn("POST /jobs - Date in the past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createJob.ErrInvalidInput):
			h.logger.Warn("POST /jobs - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /jobs - Failed to create job: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /jobs - Job created successfully: job_id=%d, reference=%s, user_id=%d",
		result.ID, result.BookingReference, userID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

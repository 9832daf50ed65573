package get_job

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/prisma-detailing/DetailingService/internal/api/handlers"
	"github.com/prisma-detailing/DetailingService/internal/api/middleware"
	"github.com/prisma-detailing/DetailingService/internal/service/jobs"
)

const (
	msgInvalidJobID  = "invalid job ID"
	msgNotFound      = "job not found"
	msgMissingUserID = "missing user ID"
	msgForbidden     = "access denied"
)

type Handler struct {
	service JobService
	logger  Logger
}

func NewHandler(service JobService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/jobs/{jobId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobIDStr := vars["jobId"]

	jobID, err := strconv.ParseInt(jobIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /jobs/{id} - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /jobs/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Сервис сам проверит права доступа
	job, err := h.service.GetByID(r.Context(), jobID, userID)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("GET /jobs/{id} - Job not found: job_id=%d", jobID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, jobs.ErrAccessDenied):
			h.logger.Warn("GET /jobs/{id} - Access denied: job_id=%d, user_id=%d", jobID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /jobs/{id} - Failed to get job: job_id=%d, error=%v", jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /jobs/{id} - Job retrieved successfully: job_id=%d, user_id=%d", jobID, userID)
	handlers.RespondJSON(w, http.StatusOK, job)
}

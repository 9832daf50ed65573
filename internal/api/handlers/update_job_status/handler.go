package update_job_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/prisma-detailing/DetailingService/internal/api/handlers"
	"github.com/prisma-detailing/DetailingService/internal/api/middleware"
	"github.com/prisma-detailing/DetailingService/internal/service/jobs"
	"github.com/prisma-detailing/DetailingService/internal/service/jobs/models"
)

const (
	msgInvalidJobID       = "invalid job ID"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "job not found"
	msgMissingUserID      = "missing user ID"
	msgForbidden          = "access denied"
	msgInvalidStatus      = "invalid job status"
	msgInvalidTransition  = "status transition is not allowed"
)

// UpdateJobStatusRequest HTTP request model
type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

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

// Handle PATCH /api/v1/jobs/{jobId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobIDStr := vars["jobId"]

	jobID, err := strconv.ParseInt(jobIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /jobs/{id}/status - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /jobs/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateJobStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /jobs/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateStatus(r.Context(), jobID, &models.UpdateStatusRequest{
		UserID: userID,
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("PATCH /jobs/{id}/status - Job not found: job_id=%d", jobID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, jobs.ErrAccessDenied):
			h.logger.Warn("PATCH /jobs/{id}/status - Access denied: job_id=%d, user_id=%d", jobID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, jobs.ErrInvalidStatus):
			h.logger.Warn("PATCH /jobs/{id}/status - Invalid status=%s: job_id=%d", req.Status, jobID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, jobs.ErrInvalidTransition):
			h.logger.Warn("PATCH /jobs/{id}/status - Invalid transition to %s: job_id=%d", req.Status, jobID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /jobs/{id}/status - Failed to update status: job_id=%d, error=%v", jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /jobs/{id}/status - Status updated successfully: job_id=%d, status=%s, user_id=%d",
		jobID, req.Status, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

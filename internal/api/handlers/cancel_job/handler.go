package cancel_job

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
	msgCannotCancel       = "job cannot be cancelled in its current status"
)

// CancelJobRequest HTTP request model
type CancelJobRequest struct {
	CancellationReason string `json:"cancellationReason"`
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

// Handle PATCH /api/v1/jobs/{jobId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobIDStr := vars["jobId"]

	jobID, err := strconv.ParseInt(jobIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /jobs/{id}/cancel - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /jobs/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /jobs/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(r.Context(), jobID, &models.CancelJobRequest{
		UserID:             userID,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("PATCH /jobs/{id}/cancel - Job not found: job_id=%d", jobID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, jobs.ErrAccessDenied):
			h.logger.Warn("PATCH /jobs/{id}/cancel - Access denied: job_id=%d, user_id=%d", jobID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, jobs.ErrCannotCancel):
			h.logger.Warn("PATCH /jobs/{id}/cancel - Cannot cancel: job_id=%d", jobID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /jobs/{id}/cancel - Failed to cancel job: job_id=%d, error=%v", jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /jobs/{id}/cancel - Job cancelled successfully: job_id=%d, user_id=%d", jobID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

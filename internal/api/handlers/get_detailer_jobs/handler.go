package get_detailer_jobs

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/prisma-detailing/DetailingService/internal/api/handlers"
	"github.com/prisma-detailing/DetailingService/internal/api/middleware"
	"github.com/prisma-detailing/DetailingService/internal/domain"
	"github.com/prisma-detailing/DetailingService/internal/service/jobs"
	"github.com/prisma-detailing/DetailingService/internal/service/jobs/models"
)

const (
	msgInvalidDetailerID = "invalid detailer ID"
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgInvalidStatus     = "invalid status filter"
	msgMissingUserID     = "missing user ID"
	msgForbidden         = "access denied"
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

// Handle GET /api/v1/detailers/{detailerId}/jobs
// Query params (все опциональны): startDate, endDate (YYYY-MM-DD),
// status, includeCancelled (true/false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	detailerIDStr := vars["detailerId"]

	detailerID, err := strconv.ParseInt(detailerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /detailers/{id}/jobs - Invalid detailer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDetailerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /detailers/{id}/jobs - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetDetailerJobsRequest{
		UserID:     userID,
		DetailerID: detailerID,
	}

	query := r.URL.Query()

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /detailers/{id}/jobs - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /detailers/{id}/jobs - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if query.Get("includeCancelled") == "true" {
		req.IncludeCancelled = true
	}

	result, err := h.service.GetDetailerJobs(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrAccessDenied):
			h.logger.Warn("GET /detailers/{id}/jobs - Access denied: detailer_id=%d, user_id=%d", detailerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, jobs.ErrInvalidInput):
			h.logger.Warn("GET /detailers/{id}/jobs - Invalid status filter: detailer_id=%d", detailerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /detailers/{id}/jobs - Failed to get jobs: detailer_id=%d, error=%v", detailerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /detailers/{id}/jobs - Jobs retrieved successfully: detailer_id=%d, jobs_count=%d",
		detailerID, len(result.Jobs))
	handlers.RespondJSON(w, http.StatusOK, result)
}

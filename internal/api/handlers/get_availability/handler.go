package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/prisma-detailing/DetailingService/internal/api/handlers"
	"github.com/prisma-detailing/DetailingService/internal/api/middleware"
	"github.com/prisma-detailing/DetailingService/internal/domain"
	"github.com/prisma-detailing/DetailingService/internal/service/availability"
	"github.com/prisma-detailing/DetailingService/internal/service/availability/models"
)

const (
	msgInvalidDetailerID = "invalid detailer ID"
	msgMissingDate       = "date is required"
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgMissingUserID     = "missing user ID"
	msgForbidden         = "access denied"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/detailers/{detailerId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	detailerIDStr := vars["detailerId"]

	detailerID, err := strconv.ParseInt(detailerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /detailers/{id}/availability - Invalid detailer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDetailerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /detailers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /detailers/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /detailers/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetForDate(r.Context(), &models.GetAvailabilityRequest{
		UserID:     userID,
		DetailerID: detailerID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("GET /detailers/{id}/availability - Access denied: detailer_id=%d, user_id=%d", detailerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /detailers/{id}/availability - Failed to get windows: detailer_id=%d, error=%v", detailerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /detailers/{id}/availability - Windows retrieved successfully: detailer_id=%d, windows_count=%d",
		detailerID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

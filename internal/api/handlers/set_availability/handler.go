package set_availability

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
	msgInvalidDetailerID  = "invalid detailer ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgMissingUserID      = "missing user ID"
	msgForbidden          = "access denied"
	msgInvalidWindow      = "invalid availability window"
	msgOverlappingWindows = "availability windows must not overlap"
)

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	Date    string               `json:"date"` // "2026-09-14"
	Windows []models.WindowInput `json:"windows"`
}

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

// Handle PUT /api/v1/detailers/{detailerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	detailerIDStr := vars["detailerId"]

	detailerID, err := strconv.ParseInt(detailerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /detailers/{id}/availability - Invalid detailer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDetailerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /detailers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /detailers/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("PUT /detailers/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.SetForDate(r.Context(), &models.SetAvailabilityRequest{
		UserID:     userID,
		DetailerID: detailerID,
		Date:       date,
		Windows:    req.Windows,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /detailers/{id}/availability - Access denied: detailer_id=%d, user_id=%d", detailerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidWindow):
			h.logger.Warn("PUT /detailers/{id}/availability - Invalid window: detailer_id=%d, error=%v", detailerID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, availability.ErrOverlappingWindows):
			h.logger.Warn("PUT /detailers/{id}/availability - Overlapping windows: detailer_id=%d", detailerID)
			handlers.RespondBadRequest(w, msgOverlappingWindows)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /detailers/{id}/availability - Invalid input: detailer_id=%d, error=%v", detailerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /detailers/{id}/availability - Failed to set windows: detailer_id=%d, error=%v", detailerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /detailers/{id}/availability - Windows saved successfully: detailer_id=%d, windows_count=%d",
		detailerID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

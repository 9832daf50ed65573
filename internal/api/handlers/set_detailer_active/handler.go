package set_detailer_active

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/prisma-detailing/DetailingService/internal/api/handlers"
	"github.com/prisma-detailing/DetailingService/internal/api/middleware"
	"github.com/prisma-detailing/DetailingService/internal/service/availability"
	"github.com/prisma-detailing/DetailingService/internal/service/availability/models"
)

const (
	msgInvalidDetailerID  = "invalid detailer ID"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgForbidden          = "access denied"
	msgDetailerNotFound   = "detailer not found"
)

// SetActiveRequest HTTP request model
type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
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

// Handle PATCH /api/v1/detailers/{detailerId}/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	detailerIDStr := vars["detailerId"]

	detailerID, err := strconv.ParseInt(detailerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /detailers/{id}/active - Invalid detailer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDetailerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /detailers/{id}/active - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /detailers/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.SetActive(r.Context(), &models.SetActiveRequest{
		UserID:     userID,
		DetailerID: detailerID,
		IsActive:   req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PATCH /detailers/{id}/active - Access denied: detailer_id=%d, user_id=%d", detailerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrDetailerNotFound):
			h.logger.Warn("PATCH /detailers/{id}/active - Detailer not found: detailer_id=%d", detailerID)
			handlers.RespondNotFound(w, msgDetailerNotFound)

		default:
			h.logger.Error("PATCH /detailers/{id}/active - Failed to set active flag: detailer_id=%d, error=%v", detailerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /detailers/{id}/active - Active flag updated: detailer_id=%d, is_active=%t",
		detailerID, req.IsActive)
	w.WriteHeader(http.StatusNoContent)
}

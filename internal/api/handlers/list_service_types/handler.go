package list_service_types

import (
	"net/http"

	"github.com/prisma-detailing/DetailingService/internal/api/handlers"
	"github.com/prisma-detailing/DetailingService/internal/domain"
)

type Handler struct {
	repo   ServiceTypeRepository
	logger Logger
}

func NewHandler(repo ServiceTypeRepository, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// ServiceTypeResponse HTTP response model
type ServiceTypeResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	WashType        string  `json:"washType"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceTypeListResponse ответ со списком типов услуг
type ServiceTypeListResponse struct {
	ServiceTypes []ServiceTypeResponse `json:"serviceTypes"`
}

// Handle GET /api/v1/service-types
// Справочник услуг, публичный: каталог показывается до авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceTypes, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("GET /service-types - Failed to list service types: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := ServiceTypeListResponse{
		ServiceTypes: make([]ServiceTypeResponse, 0, len(serviceTypes)),
	}
	for _, st := range serviceTypes {
		response.ServiceTypes = append(response.ServiceTypes, fromDomain(st))
	}

	h.logger.Info("GET /service-types - Retrieved %d service types", len(response.ServiceTypes))
	handlers.RespondJSON(w, http.StatusOK, response)
}

func fromDomain(st *domain.ServiceType) ServiceTypeResponse {
	return ServiceTypeResponse{
		ID:              st.ID,
		Name:            st.Name,
		Description:     st.Description,
		WashType:        string(st.WashType),
		DurationMinutes: st.DurationMinutes,
		Price:           st.Price,
	}
}

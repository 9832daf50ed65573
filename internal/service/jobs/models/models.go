package models

import (
	"errors"
	"time"

	"github.com/prisma-detailing/DetailingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid job status")
)

// Request модели

// CancelJobRequest запрос на отмену работы
type CancelJobRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса работы
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetDetailerJobsRequest запрос на получение работ детейлера
type GetDetailerJobsRequest struct {
	UserID           int64      `json:"userId"`
	DetailerID       int64      `json:"detailerId"`
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые работы
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDetailerJobsRequest) ToDomainFilter() (domain.DetailerJobsFilter, error) {
	filter := domain.DetailerJobsFilter{
		DetailerID:       r.DetailerID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainJobStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// JobResponse ответ с данными работы
type JobResponse struct {
	ID               int64   `json:"id"`
	BookingReference string  `json:"bookingReference"`
	DetailerID       *int64  `json:"detailerId,omitempty"`
	ServiceTypeID    int64   `json:"serviceTypeId"`
	AppointmentDate  string  `json:"appointmentDate"` // "2026-09-14"
	AppointmentTime  string  `json:"appointmentTime"` // "10:00"
	Status           string  `json:"status"`

	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`

	VehicleRegistration string  `json:"vehicleRegistration"`
	VehicleMake         string  `json:"vehicleMake"`
	VehicleModel        string  `json:"vehicleModel"`
	VehicleColor        *string `json:"vehicleColor,omitempty"`
	VehicleYear         *int    `json:"vehicleYear,omitempty"`

	Address   string   `json:"address"`
	City      string   `json:"city"`
	PostCode  string   `json:"postCode"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Addon1 *string `json:"addon1,omitempty"`
	Addon2 *string `json:"addon2,omitempty"`
	Addon3 *string `json:"addon3,omitempty"`

	// Денормализованные данные услуги
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"durationMinutes"`

	OwnerNote *string `json:"ownerNote,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobListResponse ответ со списком работ
type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

// Методы конвертации

// FromDomainJob конвертирует domain модель в DTO
func FromDomainJob(j *domain.Job) *JobResponse {
	if j == nil {
		return nil
	}

	resp := &JobResponse{
		ID:                  j.ID,
		BookingReference:    j.BookingReference,
		DetailerID:          j.DetailerID,
		ServiceTypeID:       j.ServiceTypeID,
		AppointmentDate:     j.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime:     j.AppointmentTime.String(),
		Status:              string(j.Status),
		ClientName:          j.ClientName,
		ClientPhone:         j.ClientPhone,
		VehicleRegistration: j.VehicleRegistration,
		VehicleMake:         j.VehicleMake,
		VehicleModel:        j.VehicleModel,
		VehicleColor:        j.VehicleColor,
		VehicleYear:         j.VehicleYear,
		Address:             j.Address,
		City:                j.City,
		PostCode:            j.PostCode,
		Country:             j.Country,
		Latitude:            j.Latitude,
		Longitude:           j.Longitude,
		Addon1:              j.Addon1,
		Addon2:              j.Addon2,
		Addon3:              j.Addon3,
		ServiceName:         j.ServiceName,
		ServicePrice:        j.ServicePrice,
		DurationMinutes:     j.DurationMinutes,
		OwnerNote:           j.OwnerNote,
		CancellationReason:  j.CancellationReason,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}

	if j.CancelledAt != nil {
		cancelledAt := j.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainJobList конвертирует список domain моделей в DTO
func FromDomainJobList(jobs []*domain.Job) *JobListResponse {
	result := &JobListResponse{
		Jobs: make([]JobResponse, 0, len(jobs)),
	}
	for _, j := range jobs {
		if converted := FromDomainJob(j); converted != nil {
			result.Jobs = append(result.Jobs, *converted)
		}
	}
	return result
}

// ToDomainJobStatus конвертирует строку в domain.JobStatus
func ToDomainJobStatus(status string) (domain.JobStatus, error) {
	switch domain.JobStatus(status) {
	case domain.StatusPending:
		return domain.StatusPending, nil
	case domain.StatusAccepted:
		return domain.StatusAccepted, nil
	case domain.StatusInProgress:
		return domain.StatusInProgress, nil
	case domain.StatusCompleted:
		return domain.StatusCompleted, nil
	case domain.StatusCancelled:
		return domain.StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

package create_job

import (
	"time"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	createJob "github.com/prisma-detailing/DetailingService/internal/usecase/create_job"
	"github.com/prisma-detailing/DetailingService/pkg/types"
)

// CreateJobRequest HTTP request model
type CreateJobRequest struct {
	DetailerID    *int64 `json:"detailerId,omitempty"`
	ServiceTypeID int64  `json:"serviceTypeId"`

	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`

	VehicleRegistration string  `json:"vehicleRegistration,omitempty"`
	VehicleMake         string  `json:"vehicleMake,omitempty"`
	VehicleModel        string  `json:"vehicleModel,omitempty"`
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

	AppointmentDate string `json:"appointmentDate"` // "2026-09-14"
	AppointmentTime string `json:"appointmentTime"` // "10:00"

	OwnerNote *string `json:"ownerNote,omitempty"`
}

// JobResponse HTTP response model
type JobResponse struct {
	ID               int64  `json:"id"`
	BookingReference string `json:"bookingReference"`
	DetailerID       *int64 `json:"detailerId,omitempty"`
	ServiceTypeID    int64  `json:"serviceTypeId"`
	AppointmentDate  string `json:"appointmentDate"`
	AppointmentTime  string `json:"appointmentTime"`
	Status           string `json:"status"`

	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`

	VehicleRegistration string `json:"vehicleRegistration,omitempty"`
	VehicleMake         string `json:"vehicleMake,omitempty"`
	VehicleModel        string `json:"vehicleModel,omitempty"`

	Address  string `json:"address"`
	City     string `json:"city"`
	PostCode string `json:"postCode"`
	Country  string `json:"country"`

	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"durationMinutes"`

	OwnerNote *string `json:"ownerNote,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateJobRequest) ToUseCaseRequest(userID int64) (*createJob.Request, error) {
	appointmentDate, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.AppointmentTime)
	if err != nil {
		return nil, err
	}

	return &createJob.Request{
		UserID:              userID,
		DetailerID:          r.DetailerID,
		ServiceTypeID:       r.ServiceTypeID,
		ClientName:          r.ClientName,
		ClientPhone:         r.ClientPhone,
		VehicleRegistration: r.VehicleRegistration,
		VehicleMake:         r.VehicleMake,
		VehicleModel:        r.VehicleModel,
		VehicleColor:        r.VehicleColor,
		VehicleYear:         r.VehicleYear,
		Address:             r.Address,
		City:                r.City,
		PostCode:            r.PostCode,
		Country:             r.Country,
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
		Addon1:              r.Addon1,
		Addon2:              r.Addon2,
		Addon3:              r.Addon3,
		Date:                appointmentDate,
		StartTime:           startTime,
		OwnerNote:           r.OwnerNote,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createJob.Response) *JobResponse {
	return &JobResponse{
		ID:                  resp.ID,
		BookingReference:    resp.BookingReference,
		DetailerID:          resp.DetailerID,
		ServiceTypeID:       resp.ServiceTypeID,
		AppointmentDate:     resp.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime:     resp.AppointmentTime.String(),
		Status:              resp.Status,
		ClientName:          resp.ClientName,
		ClientPhone:         resp.ClientPhone,
		VehicleRegistration: resp.VehicleRegistration,
		VehicleMake:         resp.VehicleMake,
		VehicleModel:        resp.VehicleModel,
		Address:             resp.Address,
		City:                resp.City,
		PostCode:            resp.PostCode,
		Country:             resp.Country,
		ServiceName:         resp.ServiceName,
		ServicePrice:        resp.ServicePrice,
		DurationMinutes:     resp.DurationMinutes,
		OwnerNote:           resp.OwnerNote,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}

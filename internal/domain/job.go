package domain

import (
	"time"

	"github.com/prisma-detailing/DetailingService/pkg/types"
)

// JobStatus represents the status of a detailing job
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusAccepted   JobStatus = "accepted"
	StatusInProgress JobStatus = "in_progress"
	StatusCompleted  JobStatus = "completed"
	StatusCancelled  JobStatus = "cancelled"
)

// Job represents a booked detailing appointment
type Job struct {
	ID               int64
	BookingReference string
	DetailerID       *int64 // nil до принятия работы детейлером
	ServiceTypeID    int64

	ClientName  string
	ClientPhone string

	VehicleRegistration string
	VehicleMake         string
	VehicleModel        string
	VehicleColor        *string
	VehicleYear         *int

	Address  string
	City     string
	PostCode string
	Country  string
	Latitude  *float64
	Longitude *float64

	Addon1 *string
	Addon2 *string
	Addon3 *string

	AppointmentDate time.Time        // дата без времени
	AppointmentTime types.TimeString // время начала, "HH:MM"

	// Denormalized service data for history
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int

	Status    JobStatus
	OwnerNote *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksCalendar returns true if the job occupies time on the detailer's
// calendar: pending, accepted and in_progress jobs block slot computation,
// cancelled and completed jobs never do
func (j *Job) BlocksCalendar() bool {
	return j.Status == StatusPending ||
		j.Status == StatusAccepted ||
		j.Status == StatusInProgress
}

// CanBeCancelled returns true if the job can still be cancelled
func (j *Job) CanBeCancelled() bool {
	return j.Status == StatusPending || j.Status == StatusAccepted
}

// IsCancelled returns true if the job has been cancelled
func (j *Job) IsCancelled() bool {
	return j.Status == StatusCancelled
}

// OccupiedRange returns the calendar interval taken by this job including
// the travel buffer before and after, clamped to the day
// ok=false, когда время работы некорректно и интервал вычислить нельзя
func (j *Job) OccupiedRange(bufferMinutes int) (TimeRange, bool) {
	start, err := j.AppointmentTime.Minutes()
	if err != nil {
		return TimeRange{}, false
	}
	r := TimeRange{
		Start: start - bufferMinutes,
		End:   start + j.DurationMinutes + bufferMinutes,
	}
	return r.ClampToDay(), true
}

// DetailerJobsFilter фильтр для получения работ детейлера
type DetailerJobsFilter struct {
	DetailerID       int64      // Обязательный параметр
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	Status           *JobStatus // Фильтр по статусу (опционально)
	BlockingOnly     bool       // Только работы, занимающие календарь
	IncludeCancelled bool       // Включать ли отменённые работы
}

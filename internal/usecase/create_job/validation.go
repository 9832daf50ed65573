package create_job

import (
	"fmt"
	"time"

	"github.com/prisma-detailing/DetailingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.DetailerID != nil && *req.DetailerID <= 0 {
		return fmt.Errorf("%w: detailerID must be positive", ErrInvalidInput)
	}

	if req.ServiceTypeID <= 0 {
		return fmt.Errorf("%w: serviceTypeID must be positive", ErrInvalidInput)
	}

	// clientName/clientPhone проверяются после обогащения из профиля клиента

	if req.Address == "" || req.City == "" || req.Country == "" {
		return fmt.Errorf("%w: address, city and country are required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.OwnerNote != nil && len(*req.OwnerNote) > domain.MaxOwnerNoteLength {
		return fmt.Errorf("%w: ownerNote must not exceed %d characters", ErrInvalidInput, domain.MaxOwnerNoteLength)
	}

	return nil
}

// validateDate проверяет, что дата заявки не в прошлом
func validateDate(appointmentDate, now time.Time) error {
	dateOnly := time.Date(appointmentDate.Year(), appointmentDate.Month(), appointmentDate.Day(), 0, 0, 0, 0, appointmentDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}

// appointmentRange строит интервал заявки [start, start+duration)
func appointmentRange(startTime int, durationMinutes int) domain.TimeRange {
	return domain.TimeRange{Start: startTime, End: startTime + durationMinutes}
}

// fitsOpenWindows проверяет, что интервал заявки целиком лежит в одном
// из рабочих окон детейлера
func fitsOpenWindows(appointment domain.TimeRange, open []domain.TimeRange) bool {
	for _, window := range open {
		if appointment.Start >= window.Start && appointment.End <= window.End {
			return true
		}
	}
	return false
}

// hasConflict проверяет пересечение интервала заявки с занятыми интервалами
// других работ детейлера (с учетом буфера на дорогу)
func hasConflict(appointment domain.TimeRange, jobs []*domain.Job, bufferMinutes int) bool {
	for _, j := range jobs {
		if !j.BlocksCalendar() {
			continue
		}
		occupied, ok := j.OccupiedRange(bufferMinutes)
		if !ok {
			continue
		}
		if appointment.Overlaps(occupied) {
			return true
		}
	}
	return false
}

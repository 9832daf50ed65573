package get_timeslots

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prisma-detailing/DetailingService/internal/domain"
)

// parseRequest валидирует сырые query-параметры и приводит их к типам
func parseRequest(req *Request) (*parsedRequest, error) {
	// Собираем все отсутствующие параметры в одну ошибку
	missing := make([]string, 0, 4)
	if strings.TrimSpace(req.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(req.ServiceDuration) == "" {
		missing = append(missing, "service_duration")
	}
	if strings.TrimSpace(req.Country) == "" {
		missing = append(missing, "country")
	}
	if strings.TrimSpace(req.City) == "" {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, req.Date)
	}

	duration, err := strconv.Atoi(strings.TrimSpace(req.ServiceDuration))
	if err != nil || duration <= 0 {
		return nil, fmt.Errorf("%w: expected positive integer minutes, got %q", ErrInvalidDuration, req.ServiceDuration)
	}
	if duration < domain.MinServiceDurationMinutes || duration > domain.MaxServiceDurationMinutes {
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	return &parsedRequest{
		Date:            date,
		DurationMinutes: duration,
		Country:         strings.TrimSpace(req.Country),
		City:            strings.TrimSpace(req.City),
	}, nil
}

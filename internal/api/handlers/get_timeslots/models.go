package get_timeslots

import (
	"github.com/prisma-detailing/DetailingService/internal/domain"
	getTimeslots "github.com/prisma-detailing/DetailingService/internal/usecase/get_timeslots"
)

// TimeslotsResponse HTTP response model
// Формат согласован с мобильным клиентом, поэтому snake_case
type TimeslotsResponse struct {
	Date       string     `json:"date"`
	Slots      []Timeslot `json:"slots"`
	TotalSlots int        `json:"total_slots"`
}

// Timeslot модель временного слота
type Timeslot struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// NoDetailersResponse ответ при отсутствии детейлеров в локации
// Отдается со статусом 200: пустая выдача - не ошибка клиента
type NoDetailersResponse struct {
	Error string     `json:"error"`
	Slots []Timeslot `json:"slots"`
}

// BadRequestResponse ответ при некорректных параметрах запроса
type BadRequestResponse struct {
	Error string `json:"error"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimeslots.Response) *TimeslotsResponse {
	slots := make([]Timeslot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Timeslot{
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			IsAvailable: slot.IsAvailable,
		}
	}

	return &TimeslotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
		TotalSlots: len(slots),
	}
}

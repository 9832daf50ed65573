package get_timeslots

import (
	"time"

	"github.com/prisma-detailing/DetailingService/pkg/types"
)

// Request модель запроса на расчет доступных таймслотов
// Все поля приходят как сырые query-параметры и валидируются в usecase
type Request struct {
	Date            string // Дата в формате YYYY-MM-DD
	ServiceDuration string // Длительность услуги в минутах
	Country         string // Страна (матчится без учета регистра)
	City            string // Город (матчится без учета регистра)
}

// parsedRequest типизированный запрос после валидации
type parsedRequest struct {
	Date            time.Time
	DurationMinutes int
	Country         string
	City            string
}

// Response модель ответа со списком таймслотов
type Response struct {
	Date              time.Time // Дата, на которую запрашивались слоты
	Slots             []Slot    // Объединенные слоты всех детейлеров, отсортированные по началу
	EligibleDetailers int       // Количество детейлеров, участвовавших в расчете
}

// Slot модель временного слота
type Slot struct {
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	EndTime     types.TimeString // Время окончания слота
	IsAvailable bool             // Слот доступен для бронирования
}

// Policy параметры расчета слотов
type Policy struct {
	DefaultOpenTime     types.TimeString // Начало рабочего дня при отсутствии окон
	DefaultCloseTime    types.TimeString // Конец рабочего дня при отсутствии окон
	TravelBufferMinutes int              // Буфер на дорогу вокруг каждой работы
}

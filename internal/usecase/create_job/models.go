package create_job

import (
	"time"

	"github.com/prisma-detailing/DetailingService/pkg/types"
)

// Request модель запроса на создание заявки
type Request struct {
	UserID        int64  // ID клиента (из заголовка аутентификации)
	DetailerID    *int64 // ID детейлера (опционально, заявка может ждать назначения)
	ServiceTypeID int64  // ID типа услуги

	ClientName  string // Имя клиента
	ClientPhone string // Телефон клиента

	// Данные автомобиля; при пустых полях подтягиваются из CustomerService
	VehicleRegistration string
	VehicleMake         string
	VehicleModel        string
	VehicleColor        *string
	VehicleYear         *int

	// Адрес выезда
	Address   string
	City      string
	PostCode  string
	Country   string
	Latitude  *float64
	Longitude *float64

	// Дополнительные услуги (опционально)
	Addon1 *string
	Addon2 *string
	Addon3 *string

	Date      time.Time        // Дата заявки (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")

	OwnerNote *string // Заметка клиента (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID               int64            // ID созданной заявки
	BookingReference string           // Уникальный номер заявки
	DetailerID       *int64           // ID детейлера
	ServiceTypeID    int64            // ID типа услуги
	AppointmentDate  time.Time        // Дата заявки
	AppointmentTime  types.TimeString // Время начала
	Status           string           // Статус заявки

	ClientName  string
	ClientPhone string

	VehicleRegistration string
	VehicleMake         string
	VehicleModel        string

	Address  string
	City     string
	PostCode string
	Country  string

	// Денормализованные данные услуги
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int

	OwnerNote *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Policy параметры проверки доступности слота
type Policy struct {
	DefaultOpenTime     types.TimeString // Начало рабочего дня при отсутствии окон
	DefaultCloseTime    types.TimeString // Конец рабочего дня при отсутствии окон
	TravelBufferMinutes int              // Буфер на дорогу вокруг каждой работы
}

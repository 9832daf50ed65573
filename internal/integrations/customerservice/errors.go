package customerservice

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда у клиента нет выбранного автомобиля
	ErrVehicleNotFound = errors.New("customer has no selected vehicle")

	// ErrProfileNotFound возвращается, когда профиль клиента не найден
	ErrProfileNotFound = errors.New("customer profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("customerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("customerservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что CustomerService недоступен и заявку можно создать
	// без обогащения данными клиента
	ErrServiceDegraded = errors.New("customerservice unavailable: graceful degradation applied")
)

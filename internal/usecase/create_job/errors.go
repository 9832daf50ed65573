package create_job

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_job: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате заявки (в прошлом)
	ErrInvalidDate = errors.New("create_job: invalid appointment date")

	// ErrDetailerNotFound возвращается, когда детейлер не найден
	ErrDetailerNotFound = errors.New("create_job: detailer not found")

	// ErrDetailerNotAvailable возвращается, когда детейлер деактивирован
	ErrDetailerNotAvailable = errors.New("create_job: detailer is not available")

	// ErrServiceTypeNotFound возвращается, когда тип услуги не найден
	ErrServiceTypeNotFound = errors.New("create_job: service type not found")

	// ErrOutsideWorkingHours возвращается, когда время заявки не попадает
	// в рабочие окна детейлера
	ErrOutsideWorkingHours = errors.New("create_job: appointment is outside working hours")

	// ErrSlotConflict возвращается, когда слот пересекается с другой работой
	// детейлера с учетом буфера на дорогу
	ErrSlotConflict = errors.New("create_job: slot conflicts with another job")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_job: internal error")
)

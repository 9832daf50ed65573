package get_timeslots

import "errors"

var (
	// ErrMissingField возвращается, когда обязательный параметр запроса отсутствует
	// Текст ошибки перечисляет отсутствующие параметры
	ErrMissingField = errors.New("get_timeslots: missing required parameter")

	// ErrInvalidDate возвращается, когда дата не парсится как календарная (YYYY-MM-DD)
	ErrInvalidDate = errors.New("get_timeslots: invalid date format")

	// ErrInvalidDuration возвращается, когда service_duration не является
	// положительным целым числом минут
	ErrInvalidDuration = errors.New("get_timeslots: invalid service duration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_timeslots: internal error")
)

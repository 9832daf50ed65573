package jobs

import "errors"

var (
	// ErrJobNotFound возвращается, когда работа не найдена
	ErrJobNotFound = errors.New("job not found")

	// ErrDetailerNotFound возвращается, когда детейлер не найден
	ErrDetailerNotFound = errors.New("detailer not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда работу нельзя отменить
	ErrCannotCancel = errors.New("job cannot be cancelled")

	// ErrInvalidStatus возвращается при недопустимом статусе
	ErrInvalidStatus = errors.New("invalid job status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid job status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

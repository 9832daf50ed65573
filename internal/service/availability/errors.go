package availability

import "errors"

var (
	// ErrDetailerNotFound возвращается, когда детейлер не найден
	ErrDetailerNotFound = errors.New("detailer not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidWindow возвращается при некорректном окне доступности
	ErrInvalidWindow = errors.New("invalid availability window")

	// ErrOverlappingWindows возвращается, когда окна одной даты пересекаются
	ErrOverlappingWindows = errors.New("availability windows overlap")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

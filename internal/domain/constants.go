package domain

// Default booking policy values (overridable via config.toml [booking])
const (
	DefaultOpenTime            = "06:00"
	DefaultCloseTime           = "21:00"
	DefaultTravelBufferMinutes = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxOwnerNoteLength        = 500
	MaxCancelReasonLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses список статусов работ, занимающих время в календаре детейлера
// Используется для фильтрации при подсчёте доступных слотов
var BlockingStatuses = []JobStatus{
	StatusPending,
	StatusAccepted,
	StatusInProgress,
}

// FinishedStatuses список статусов, не занимающих время в календаре
var FinishedStatuses = []JobStatus{
	StatusCompleted,
	StatusCancelled,
}

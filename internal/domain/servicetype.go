package domain

// WashType тип мойки
type WashType string

const (
	WashTypeSteam       WashType = "steam"
	WashTypeWaterless   WashType = "waterless"
	WashTypeTraditional WashType = "traditional"
)

// ServiceType represents a bookable detailing service
type ServiceType struct {
	ID              int64
	Name            string
	Description     *string
	WashType        WashType
	DurationMinutes int
	Price           float64
}

package domain

import (
	"strings"
	"time"
)

// Detailer represents a mobile detailer registered on the platform
type Detailer struct {
	ID             int64
	UserID         int64
	Address        *string
	City           string
	PostCode       *string
	Country        string
	Latitude       *float64
	Longitude      *float64
	Rating         float64
	CommissionRate float64
	IsActive       bool
	IsVerified     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ServesLocation returns true if the detailer works in the given country/city
// Location matching is case-insensitive (the storage layer applies the same rule)
func (d *Detailer) ServesLocation(country, city string) bool {
	return strings.EqualFold(d.Country, country) && strings.EqualFold(d.City, city)
}

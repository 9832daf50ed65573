package domain

import (
	"time"

	"github.com/prisma-detailing/DetailingService/pkg/types"
)

// AvailabilityWindow represents a detailer-declared open interval on a
// specific calendar date. Multiple non-overlapping windows may exist per
// detailer per date. Read-only to the timeslot engine.
type AvailabilityWindow struct {
	ID          int64
	DetailerID  int64
	Date        time.Time        // дата без времени
	StartTime   types.TimeString // "HH:MM"
	EndTime     types.TimeString // "HH:MM", строго позже StartTime
	IsAvailable bool
	CreatedAt   time.Time
}

// Range returns the window as a TimeRange
// ok=false, когда времена окна некорректны
func (w *AvailabilityWindow) Range() (TimeRange, bool) {
	r, err := NewTimeRange(w.StartTime, w.EndTime)
	if err != nil || r.IsEmpty() {
		return TimeRange{}, false
	}
	return r, true
}

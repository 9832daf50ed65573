package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prisma-detailing/DetailingService/pkg/types"
)

func mustRange(t *testing.T, start, end string) TimeRange {
	t.Helper()
	r, err := NewTimeRange(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return r
}

func TestNewTimeRange(t *testing.T) {
	r := mustRange(t, "09:00", "17:00")
	assert.Equal(t, 9*60, r.Start)
	assert.Equal(t, 17*60, r.End)
	assert.Equal(t, 8*60, r.Duration())

	_, err := NewTimeRange("nonsense", "17:00")
	assert.Error(t, err)
}

func TestTimeRange_Overlaps(t *testing.T) {
	base := mustRange(t, "11:30", "12:00")

	// Реальное пересечение
	assert.True(t, base.Overlaps(mustRange(t, "11:20", "11:40")))
	// Граничащие интервалы не пересекаются
	assert.False(t, base.Overlaps(mustRange(t, "11:00", "11:30")))
	assert.False(t, base.Overlaps(mustRange(t, "12:00", "12:30")))
}

func TestTimeRange_Subtract_NoOverlap(t *testing.T) {
	open := mustRange(t, "09:00", "17:00")

	remaining := open.Subtract(mustRange(t, "07:00", "08:00"))
	require.Len(t, remaining, 1)
	assert.Equal(t, open, remaining[0])
}

func TestTimeRange_Subtract_Split(t *testing.T) {
	open := mustRange(t, "09:00", "17:00")

	// Занятый интервал внутри окна расщепляет его на два
	remaining := open.Subtract(mustRange(t, "13:30", "15:30"))
	require.Len(t, remaining, 2)
	assert.Equal(t, mustRange(t, "09:00", "13:30"), remaining[0])
	assert.Equal(t, mustRange(t, "15:30", "17:00"), remaining[1])
}

func TestTimeRange_Subtract_TrimEdges(t *testing.T) {
	open := mustRange(t, "09:00", "17:00")

	// Срезает начало
	remaining := open.Subtract(mustRange(t, "08:00", "10:00"))
	require.Len(t, remaining, 1)
	assert.Equal(t, mustRange(t, "10:00", "17:00"), remaining[0])

	// Срезает конец
	remaining = open.Subtract(mustRange(t, "16:00", "18:00"))
	require.Len(t, remaining, 1)
	assert.Equal(t, mustRange(t, "09:00", "16:00"), remaining[0])
}

func TestTimeRange_Subtract_Swallow(t *testing.T) {
	open := mustRange(t, "10:00", "11:00")

	// Занятый интервал накрывает окно целиком
	remaining := open.Subtract(mustRange(t, "09:00", "12:00"))
	assert.Empty(t, remaining)

	// Точное совпадение
	remaining = open.Subtract(mustRange(t, "10:00", "11:00"))
	assert.Empty(t, remaining)
}

func TestTimeRange_ClampToDay(t *testing.T) {
	r := TimeRange{Start: -20, End: 25 * 60}
	clamped := r.ClampToDay()
	assert.Equal(t, 0, clamped.Start)
	assert.Equal(t, 24*60, clamped.End)
}

func TestSubtractAll(t *testing.T) {
	open := []TimeRange{mustRange(t, "09:00", "17:00")}
	occupied := []TimeRange{
		mustRange(t, "10:00", "11:00"),
		mustRange(t, "14:00", "15:00"),
	}

	remaining := SubtractAll(open, occupied)
	require.Len(t, remaining, 3)
	assert.Equal(t, mustRange(t, "09:00", "10:00"), remaining[0])
	assert.Equal(t, mustRange(t, "11:00", "14:00"), remaining[1])
	assert.Equal(t, mustRange(t, "15:00", "17:00"), remaining[2])
}

func TestJob_OccupiedRange(t *testing.T) {
	job := &Job{
		AppointmentTime: "14:00",
		DurationMinutes: 60,
		Status:          StatusAccepted,
	}

	// Буфер расширяет занятый интервал в обе стороны
	occupied, ok := job.OccupiedRange(30)
	require.True(t, ok)
	assert.Equal(t, mustRange(t, "13:30", "15:30"), occupied)

	// Буфер, выходящий за начало суток, обрезается
	early := &Job{AppointmentTime: "00:10", DurationMinutes: 60}
	occupied, ok = early.OccupiedRange(30)
	require.True(t, ok)
	assert.Equal(t, 0, occupied.Start)

	// Некорректное время - интервал не вычислить
	broken := &Job{AppointmentTime: "not-a-time", DurationMinutes: 60}
	_, ok = broken.OccupiedRange(30)
	assert.False(t, ok)
}

func TestJob_BlocksCalendar(t *testing.T) {
	for _, status := range BlockingStatuses {
		job := &Job{Status: status}
		assert.True(t, job.BlocksCalendar(), "status %s must block the calendar", status)
	}
	for _, status := range FinishedStatuses {
		job := &Job{Status: status}
		assert.False(t, job.BlocksCalendar(), "status %s must not block the calendar", status)
	}
}

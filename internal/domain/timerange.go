package domain

import (
	"fmt"

	"github.com/prisma-detailing/DetailingService/pkg/types"
)

const minutesInDay = 24 * 60

// TimeRange полуинтервал [Start, End) в минутах с начала суток
// Основа интервальной арифметики движка слотов: окна доступности,
// занятые интервалы работ и кандидаты-слоты - всё выражается через TimeRange
type TimeRange struct {
	Start int
	End   int
}

// NewTimeRange создает TimeRange из пары "HH:MM" значений
func NewTimeRange(start, end types.TimeString) (TimeRange, error) {
	s, err := start.Minutes()
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid range start: %w", err)
	}
	e, err := end.Minutes()
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid range end: %w", err)
	}
	return TimeRange{Start: s, End: e}, nil
}

// IsEmpty проверяет, что интервал пуст (End <= Start)
func (r TimeRange) IsEmpty() bool {
	return r.End <= r.Start
}

// Duration возвращает длину интервала в минутах
func (r TimeRange) Duration() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start
}

// Overlaps проверяет реальное пересечение интервалов
// Граничащие интервалы (конец одного == начало другого) НЕ пересекаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && r.End > other.Start
}

// ClampToDay обрезает интервал границами суток [00:00, 24:00)
func (r TimeRange) ClampToDay() TimeRange {
	clamped := r
	if clamped.Start < 0 {
		clamped.Start = 0
	}
	if clamped.End > minutesInDay {
		clamped.End = minutesInDay
	}
	return clamped
}

// Subtract вычитает occupied из интервала
// Возвращает 0, 1 или 2 оставшихся подынтервала:
// - occupied не пересекается с интервалом → сам интервал без изменений
// - occupied накрывает интервал целиком → пусто
// - occupied срезает край → один подынтервал
// - occupied лежит внутри → интервал расщепляется на два
func (r TimeRange) Subtract(occupied TimeRange) []TimeRange {
	if r.IsEmpty() {
		return []TimeRange{}
	}
	if occupied.IsEmpty() || !r.Overlaps(occupied) {
		return []TimeRange{r}
	}

	remaining := make([]TimeRange, 0, 2)
	if left := (TimeRange{Start: r.Start, End: occupied.Start}); !left.IsEmpty() {
		remaining = append(remaining, left)
	}
	if right := (TimeRange{Start: occupied.End, End: r.End}); !right.IsEmpty() {
		remaining = append(remaining, right)
	}
	return remaining
}

// SubtractAll вычитает каждый занятый интервал из каждого открытого
// Порядок открытых интервалов сохраняется, пустые остатки отбрасываются
func SubtractAll(open []TimeRange, occupied []TimeRange) []TimeRange {
	result := open
	for _, occ := range occupied {
		next := make([]TimeRange, 0, len(result))
		for _, interval := range result {
			next = append(next, interval.Subtract(occ)...)
		}
		result = next
	}
	return result
}

// StartString возвращает начало интервала как "HH:MM"
func (r TimeRange) StartString() types.TimeString {
	ts, err := types.NewTimeStringFromMinutes(r.Start)
	if err != nil {
		return ""
	}
	return ts
}

// EndString возвращает конец интервала как "HH:MM"
// Окна задаются значениями TimeString, поэтому конец слота всегда < 24:00
func (r TimeRange) EndString() types.TimeString {
	ts, err := types.NewTimeStringFromMinutes(r.End)
	if err != nil {
		return ""
	}
	return ts
}

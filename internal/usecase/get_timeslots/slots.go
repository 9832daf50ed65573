package get_timeslots

import (
	"sort"

	"github.com/prisma-detailing/DetailingService/internal/domain"
)

// openRangesByDetailer группирует открытые окна по детейлерам
// Детейлер без объявленных окон получает дефолтный рабочий день из политики
func openRangesByDetailer(detailers []*domain.Detailer, windows []*domain.AvailabilityWindow, policy Policy) map[int64][]domain.TimeRange {
	open := make(map[int64][]domain.TimeRange, len(detailers))

	for _, window := range windows {
		r, ok := window.Range()
		if !ok {
			// Окно с некорректным или пустым интервалом не дает слотов
			continue
		}
		open[window.DetailerID] = append(open[window.DetailerID], r)
	}

	defaultRange, err := domain.NewTimeRange(policy.DefaultOpenTime, policy.DefaultCloseTime)
	if err != nil || defaultRange.IsEmpty() {
		return open
	}

	for _, detailer := range detailers {
		if _, declared := open[detailer.ID]; !declared {
			open[detailer.ID] = []domain.TimeRange{defaultRange}
		}
	}

	return open
}

// occupiedRangesByDetailer строит занятые интервалы из работ с учетом буфера на дорогу
func occupiedRangesByDetailer(jobs []*domain.Job, bufferMinutes int) map[int64][]domain.TimeRange {
	occupied := make(map[int64][]domain.TimeRange)

	for _, job := range jobs {
		if job.DetailerID == nil || !job.BlocksCalendar() {
			continue
		}
		r, ok := job.OccupiedRange(bufferMinutes)
		if !ok {
			continue
		}
		occupied[*job.DetailerID] = append(occupied[*job.DetailerID], r)
	}

	return occupied
}

// sliceSlots нарезает свободный интервал на слоты длительностью duration минут
// Слоты привязаны к началу интервала; неполный хвост отбрасывается
func sliceSlots(free domain.TimeRange, durationMinutes int) []domain.TimeRange {
	if durationMinutes <= 0 {
		return nil
	}

	slots := make([]domain.TimeRange, 0, free.Duration()/durationMinutes)
	for start := free.Start; start+durationMinutes <= free.End; start += durationMinutes {
		slots = append(slots, domain.TimeRange{Start: start, End: start + durationMinutes})
	}

	return slots
}

// mergeCandidates объединяет слоты всех детейлеров: дедупликация по (start, end)
// и сортировка по времени начала, затем по времени окончания
func mergeCandidates(candidates []domain.TimeRange) []Slot {
	type slotKey struct {
		start int
		end   int
	}

	seen := make(map[slotKey]struct{}, len(candidates))
	unique := make([]domain.TimeRange, 0, len(candidates))
	for _, candidate := range candidates {
		key := slotKey{start: candidate.Start, end: candidate.End}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, candidate)
	}

	sort.Slice(unique, func(i, j int) bool {
		if unique[i].Start != unique[j].Start {
			return unique[i].Start < unique[j].Start
		}
		return unique[i].End < unique[j].End
	})

	slots := make([]Slot, 0, len(unique))
	for _, r := range unique {
		slots = append(slots, Slot{
			StartTime:   r.StartString(),
			EndTime:     r.EndString(),
			IsAvailable: true,
		})
	}

	return slots
}

package get_available_slots

import (
	"time"

	"github.com/logoped-app/appointment-service/internal/domain"
	"github.com/logoped-app/appointment-service/pkg/types"
)

// availableSlots возвращает слоты каталога, не занятые активными записями,
// в порядке каталога. Для сегодняшней даты дополнительно отсекаются слоты,
// до начала которых осталось меньше минимального запаса времени
func availableSlots(
	catalog domain.SlotCatalog,
	taken []types.TimeString,
	policy domain.BookingPolicy,
	date time.Time,
	now time.Time,
) []types.TimeString {
	takenSet := make(map[types.TimeString]struct{}, len(taken))
	for _, slot := range taken {
		takenSet[slot] = struct{}{}
	}

	cutoff := -1
	if isSameDay(date, now) {
		cutoff = now.Hour()*60 + now.Minute() + policy.MinNoticeMinutes
	}

	available := make([]types.TimeString, 0, catalog.Size())
	for _, slot := range catalog.Slots() {
		if _, ok := takenSet[slot]; ok {
			continue
		}
		if cutoff >= 0 {
			minutes, err := slot.Minutes()
			if err != nil || minutes <= cutoff {
				continue
			}
		}
		available = append(available, slot)
	}

	return available
}

// isSameDay сравнивает календарные даты без учета времени
func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// isDateInPast проверяет, что дата строго раньше сегодняшней
func isDateInPast(date, now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	dy, dm, dd := date.Date()
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, now.Location())
	return day.Before(today)
}

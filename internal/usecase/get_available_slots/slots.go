package get_available_slots

import (
	"time"

	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// filterByNotice фильтрует слоты с учетом текущего времени и минимального
// времени до бронирования. Для дат в будущем возвращает все слоты;
// для сегодняшней даты оставляет только слоты, начинающиеся не раньше
// now + minBookingNoticeMinutes.
func filterByNotice(
	slots []types.TimeString,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) ([]types.TimeString, error) {
	if !isSameDay(requestDate, now) {
		return slots, nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// Порог ушел за границу суток — сегодня слотов больше нет
		return []types.TimeString{}, nil
	}

	filtered := make([]types.TimeString, 0)
	for _, slot := range slots {
		if !slot.IsBefore(minAllowedTime) {
			filtered = append(filtered, slot)
		}
	}

	return filtered, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

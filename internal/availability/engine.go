package availability

import (
	"fmt"
	"time"

	"github.com/vmrkv/CST-BookingService/internal/domain"
	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// DaySchedule собранные факты о доступности на одну дату: ростер активных
// консультантов и их шаблоны, перерывы, отпуска и занимающие ёмкость
// бронирования, сгруппированные по консультанту.
//
// Структура строится usecase-слоем из данных хранилища; все вычисления
// ниже — чистые функции без побочных эффектов.
type DaySchedule struct {
	Date        time.Time
	Consultants []*domain.Consultant
	Templates   map[int64][]*domain.WeeklyTemplate
	Breaks      map[int64][]*domain.Break
	TimeOff     map[int64][]*domain.TimeOff
	Bookings    map[int64][]*domain.Booking
}

// NewDaySchedule группирует сырые выборки хранилища по консультантам.
// Бронирования без назначенного консультанта ёмкость не занимают
// и отбрасываются.
func NewDaySchedule(
	date time.Time,
	consultants []*domain.Consultant,
	templates []*domain.WeeklyTemplate,
	breaks []*domain.Break,
	timeOff []*domain.TimeOff,
	bookings []*domain.Booking,
) *DaySchedule {
	s := &DaySchedule{
		Date:        date,
		Consultants: consultants,
		Templates:   make(map[int64][]*domain.WeeklyTemplate),
		Breaks:      make(map[int64][]*domain.Break),
		TimeOff:     make(map[int64][]*domain.TimeOff),
		Bookings:    make(map[int64][]*domain.Booking),
	}

	for _, t := range templates {
		s.Templates[t.ConsultantID] = append(s.Templates[t.ConsultantID], t)
	}
	for _, b := range breaks {
		s.Breaks[b.ConsultantID] = append(s.Breaks[b.ConsultantID], b)
	}
	for _, t := range timeOff {
		s.TimeOff[t.ConsultantID] = append(s.TimeOff[t.ConsultantID], t)
	}
	for _, b := range bookings {
		if b.ConsultantID == nil || !b.OccupiesCapacity() {
			continue
		}
		s.Bookings[*b.ConsultantID] = append(s.Bookings[*b.ConsultantID], b)
	}

	return s
}

// GenerateSlotTimes генерирует кандидатов времени начала слота:
// open, open+D, open+2D, ... где D = полная длительность услуги
// (консультация + буферы до и после).
//
// Шаг сетки равен именно полной длительности, а не чистой длительности
// консультации — иначе два соседних слота потребовали бы пересекающееся
// время консультанта. Последний слот всегда целиком помещается до close;
// неполный хвост окна отбрасывается.
func GenerateSlotTimes(open, close types.TimeString, totalDurationMinutes int) ([]types.TimeString, error) {
	if totalDurationMinutes <= 0 {
		return nil, fmt.Errorf("total duration must be positive, got %d", totalDurationMinutes)
	}

	slots := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		slotEnd, err := current.AddMinutes(totalDurationMinutes)
		if err != nil {
			// Вышли за границу суток — дальше слотов нет
			break
		}
		if slotEnd.IsAfter(close) {
			break
		}

		slots = append(slots, current)

		next, err := current.AddMinutes(totalDurationMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return slots, nil
}

// RemainingCapacity вычисляет остаток ёмкости консультанта для интервала
// [start, start+D). Порядок проверок:
//
//  1. активное окно шаблона на этот день недели должно покрывать интервал
//     ЦЕЛИКОМ — частичное покрытие означает недоступность;
//  2. отпуск на эту дату обнуляет доступность независимо от шаблонов;
//  3. перерыв, пересекающий интервал, обнуляет доступность;
//  4. остаток = max_bookings окна минус количество активных бронирований,
//     пересекающих интервал (строгое пересечение: граничащие интервалы
//     не конфликтуют).
func (s *DaySchedule) RemainingCapacity(consultantID int64, start types.TimeString, totalDurationMinutes int) int {
	end, err := start.AddMinutes(totalDurationMinutes)
	if err != nil {
		return 0
	}

	// 1. Ищем окно шаблона, покрывающее интервал целиком
	var window *domain.WeeklyTemplate
	for _, t := range s.Templates[consultantID] {
		if !t.IsActive || t.DayOfWeek != int(s.Date.Weekday()) {
			continue
		}
		if t.Covers(start, end) {
			window = t
			break
		}
	}
	if window == nil {
		return 0
	}

	// 2. Отпуск имеет приоритет над шаблонами и перерывами
	for _, t := range s.TimeOff[consultantID] {
		if t.Covers(s.Date) {
			return 0
		}
	}

	// 3. Перерывы
	for _, b := range s.Breaks[consultantID] {
		if b.AppliesTo(s.Date) && b.Intersects(start, end) {
			return 0
		}
	}

	// 4. Считаем пересекающиеся активные бронирования
	overlapping := 0
	for _, b := range s.Bookings[consultantID] {
		bookingEnd, err := b.StartTime.AddMinutes(b.DurationMinutes)
		if err != nil {
			continue
		}
		// Строгие неравенства: бронирование, заканчивающееся ровно в
		// начале слота (или начинающееся ровно в его конце), не мешает
		if b.StartTime.IsBefore(end) && bookingEnd.IsAfter(start) {
			overlapping++
		}
	}

	remaining := window.MaxBookings - overlapping
	if remaining < 0 {
		return 0
	}
	return remaining
}

// BuildSlots строит слоты с детализацией по консультантам для каждого
// кандидата времени. В Consultants попадают только консультанты
// с остатком ёмкости >= 1.
func (s *DaySchedule) BuildSlots(slotTimes []types.TimeString, totalDurationMinutes int) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, len(slotTimes))

	for i, start := range slotTimes {
		slot := domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: totalDurationMinutes,
			Consultants:     make([]domain.ConsultantCapacity, 0),
		}

		for _, c := range s.Consultants {
			remaining := s.RemainingCapacity(c.ID, start, totalDurationMinutes)
			if remaining >= 1 {
				slot.Consultants = append(slot.Consultants, domain.ConsultantCapacity{
					ConsultantID:      c.ID,
					RemainingCapacity: remaining,
				})
				slot.TotalCapacity += remaining
			}
		}

		result[i] = slot
	}

	return result
}

// CountAvailable считает количество слотов с хотя бы одной единицей
// ёмкости. Агрегатный вариант BuildSlots для календарного представления:
// не перечисляет консультантов и останавливает проверку слота на первом
// свободном консультанте.
func (s *DaySchedule) CountAvailable(slotTimes []types.TimeString, totalDurationMinutes int) int {
	count := 0

	for _, start := range slotTimes {
		for _, c := range s.Consultants {
			if s.RemainingCapacity(c.ID, start, totalDurationMinutes) >= 1 {
				count++
				break
			}
		}
	}

	return count
}

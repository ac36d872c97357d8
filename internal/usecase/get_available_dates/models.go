package get_available_dates

import (
	"time"

	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// Settings настройки бизнес-часов и ограничений бронирования
type Settings struct {
	OpenTime                types.TimeString
	CloseTime               types.TimeString
	Location                *time.Location
	AdvanceBookingDays      int
	MinBookingNoticeMinutes int
}

// Request модель запроса календаря доступности
type Request struct {
	ServiceID int64 // ID услуги
	DaysAhead int   // Горизонт в днях начиная с сегодня (0 = дефолт)
}

// Response календарь доступности по датам.
// Даты без единого свободного слота присутствуют в списке с
// AvailableSlots = 0, чтобы клиент мог пометить их недоступными.
type Response struct {
	ServiceID          int64
	FirstAvailableDate *time.Time      // Первая дата хотя бы с одним слотом (nil, если нет)
	Dates              []AvailableDate // По одной записи на каждую дату горизонта
}

// AvailableDate агрегат доступности на одну дату
type AvailableDate struct {
	Date           time.Time
	AvailableSlots int // Количество слотов хотя бы с одним свободным местом
}

package get_available_slots

import (
	"time"

	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// Settings настройки бизнес-часов и ограничений бронирования.
// Снимок конфигурации сервиса, передается при создании usecase.
type Settings struct {
	OpenTime                types.TimeString // Начало рабочего дня
	CloseTime               types.TimeString // Конец рабочего дня
	Location                *time.Location   // Часовой пояс бизнеса
	AdvanceBookingDays      int              // Горизонт бронирования в днях (0 = без ограничений)
	MinBookingNoticeMinutes int              // Минимальное время до начала слота
}

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов на дату
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	ServiceID       int64     // ID услуги
	ServiceName     string    // Название услуги
	DurationMinutes int       // Чистая длительность консультации
	Slots           []Slot    // Список слотов (включая полностью занятые)
}

// Slot модель временного слота с детализацией по консультантам
type Slot struct {
	StartTime       types.TimeString     // Время начала слота (например, "10:00")
	DurationMinutes int                  // Полная длительность слота с буферами
	Available       bool                 // Есть ли хотя бы одно свободное место
	TotalCapacity   int                  // Суммарный остаток ёмкости по всем консультантам
	Consultants     []ConsultantCapacity // Консультанты со свободной ёмкостью
}

// ConsultantCapacity остаток ёмкости консультанта в слоте
type ConsultantCapacity struct {
	ConsultantID      int64
	RemainingCapacity int
}

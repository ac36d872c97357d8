package create_booking

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
	DefaultStrategy         string // Стратегия назначения, если клиент не указал свою
}

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID             int64            // ID услуги
	Date                  time.Time        // Дата бронирования (без времени)
	StartTime             types.TimeString // Время начала слота
	Strategy              string           // Стратегия назначения (пустая = дефолтная)
	PreferredConsultantID *int64           // Обязателен для стратегии specific
	CustomerName          string
	CustomerEmail         string
	CustomerPhone         *string
	CustomerCompany       *string
	Notes                 *string
}

// Response модель созданного бронирования
type Response struct {
	ID                 int64
	Reference          string // Публичный UUID бронирования
	ServiceID          int64
	ConsultantID       int64
	Date               time.Time
	StartTime          types.TimeString
	DurationMinutes    int // Полная длительность слота с буферами
	Status             string
	PaymentStatus      string
	ServiceName        string
	ServicePrice       float64
	AssignmentStrategy string
	AssignmentReason   string
	ConfidenceScore    int // 0-100, уверенность резолвера в выборе
	CustomerName       string
	CustomerEmail      string
	Notes              *string
	CreatedAt          time.Time
}

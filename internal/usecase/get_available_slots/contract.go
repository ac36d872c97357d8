package get_available_slots

import (
	"context"
	"time"

	"github.com/vmrkv/CST-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	// GetActiveByID получает активную услугу по ID
	GetActiveByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписаний консультантов
type ScheduleRepository interface {
	ListActiveConsultants(ctx context.Context) ([]*domain.Consultant, error)
	ListTemplatesForDay(ctx context.Context, dayOfWeek int) ([]*domain.WeeklyTemplate, error)
	ListBreaksForDate(ctx context.Context, date time.Time) ([]*domain.Break, error)
	ListTimeOffForDate(ctx context.Context, date time.Time) ([]*domain.TimeOff, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListOccupyingForDate получает бронирования, занимающие ёмкость на дату
	ListOccupyingForDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

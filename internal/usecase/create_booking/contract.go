package create_booking

import (
	"context"
	"time"

	"github.com/vmrkv/CST-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
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
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// ListOccupyingForDate внутри транзакции блокирует строки (FOR UPDATE)
	ListOccupyingForDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	// CountActiveByConsultant возвращает общую активную загрузку по консультантам
	CountActiveByConsultant(ctx context.Context) (map[int64]int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

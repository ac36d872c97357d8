package bookings

import (
	"context"
	"time"

	"github.com/vmrkv/CST-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByConsultantWithFilter(ctx context.Context, filter domain.ConsultantBookingsFilter) ([]*domain.Booking, error)
	ListOccupyingForDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	Reassign(ctx context.Context, id int64, consultantID int64, reason string) error
}

// ScheduleRepository интерфейс репозитория расписаний консультантов
type ScheduleRepository interface {
	ListActiveConsultants(ctx context.Context) ([]*domain.Consultant, error)
	GetActiveConsultantByID(ctx context.Context, id int64) (*domain.Consultant, error)
	ListTemplatesForDay(ctx context.Context, dayOfWeek int) ([]*domain.WeeklyTemplate, error)
	ListBreaksForDate(ctx context.Context, date time.Time) ([]*domain.Break, error)
	ListTimeOffForDate(ctx context.Context, date time.Time) ([]*domain.TimeOff, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

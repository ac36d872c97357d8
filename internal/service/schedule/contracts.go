package schedule

import (
	"context"

	"github.com/vmrkv/CST-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний консультантов
type ScheduleRepository interface {
	GetActiveConsultantByID(ctx context.Context, id int64) (*domain.Consultant, error)
	ListTemplatesByConsultant(ctx context.Context, consultantID int64) ([]*domain.WeeklyTemplate, error)
	DeleteDayTemplates(ctx context.Context, consultantID int64, dayOfWeek int) error
	InsertTemplates(ctx context.Context, templates []*domain.WeeklyTemplate) error
	CreateBreak(ctx context.Context, b *domain.Break) (*domain.Break, error)
	CreateTimeOff(ctx context.Context, t *domain.TimeOff) (*domain.TimeOff, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

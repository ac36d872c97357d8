package get_schedule

import (
	"context"

	"github.com/vmrkv/CST-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeekSchedule(ctx context.Context, consultantID int64) (*models.WeekScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package replace_schedule_day

import (
	"context"

	"github.com/vmrkv/CST-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceDay(ctx context.Context, consultantID int64, dayOfWeek int, req *models.ReplaceDayRequest) (*models.WeekScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

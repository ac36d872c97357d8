package copy_schedule_day

import (
	"context"

	"github.com/vmrkv/CST-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CopyDay(ctx context.Context, consultantID int64, req *models.CopyDayRequest) (*models.WeekScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

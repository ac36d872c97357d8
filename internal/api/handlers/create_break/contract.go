package create_break

import (
	"context"

	"github.com/vmrkv/CST-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateBreak(ctx context.Context, consultantID int64, req *models.CreateBreakRequest) (*models.BreakResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

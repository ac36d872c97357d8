package get_consultant_bookings

import (
	"context"

	"github.com/vmrkv/CST-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetConsultantBookings(ctx context.Context, req *models.GetConsultantBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

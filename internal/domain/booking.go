package domain

import (
	"time"

	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusInProgress  BookingStatus = "in_progress"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusNoShow      BookingStatus = "no_show"
	StatusRescheduled BookingStatus = "rescheduled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentNotRequired PaymentStatus = "not_required"
	PaymentPending     PaymentStatus = "pending"
	PaymentPaid        PaymentStatus = "paid"
	PaymentRefunded    PaymentStatus = "refunded"
)

// Booking represents a consulting appointment in the system
type Booking struct {
	ID        int64
	Reference string // внешний идентификатор (uuid), отдаётся клиенту

	ServiceID    int64
	ConsultantID *int64 // nil, пока консультант не назначен

	ScheduledDate time.Time        // календарная дата (локальная для бизнеса)
	StartTime     types.TimeString // время начала слота
	// DurationMinutes is a snapshot of the service total duration
	// (consultation + buffers) taken at booking time, so later service
	// edits never change already-committed intervals.
	DurationMinutes int

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// Customer contact data
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	CustomerCompany *string

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	Notes *string

	AssignmentStrategy string
	AssignmentReason   *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCapacity returns true while the booking holds one capacity unit
// of the assigned consultant for [StartTime, StartTime+DurationMinutes).
func (b *Booking) OccupiesCapacity() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeReassigned returns true if staff may rebind the consultant.
// Reassignment never changes the scheduled interval.
func (b *Booking) CanBeReassigned() bool {
	return b.OccupiesCapacity()
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// ConsultantBookingsFilter фильтр для выборки бронирований консультанта
type ConsultantBookingsFilter struct {
	ConsultantID    int64
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершённые и отменённые
}

// ValidBookingStatus проверяет, что строка является допустимым статусом
func ValidBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return status, true
	}
	return "", false
}

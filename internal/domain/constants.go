package domain

// Default service buffer values, applied when the store holds NULL.
// Resolution happens only inside Service accessors, never at call sites.
const (
	DefaultBufferBeforeMinutes = 0
	DefaultBufferAfterMinutes  = 5
)

// Default booking configuration values
const (
	DefaultAdvanceBookingDays      = 30
	DefaultMinBookingNoticeMinutes = 60
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MinTemplateMaxBookings      = 1
	MaxTemplateMaxBookings      = 50
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxDaysAheadQuery           = 90
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие ёмкость консультанта.
// Используется при подсчёте занятых мест в слоте.
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
	StatusRescheduled,
}

// OccupyingStatuses статусы, занимающие ёмкость консультанта
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

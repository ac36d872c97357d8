package domain

import (
	"time"

	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// Consultant represents a staff member who can receive bookings
type Consultant struct {
	ID       int64
	Name     string
	Email    string
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeeklyTemplate is a consultant's recurring availability window for one
// day of week. A day may hold several non-overlapping windows
// (e.g. morning and afternoon).
type WeeklyTemplate struct {
	ID           int64
	ConsultantID int64
	DayOfWeek    int // 0=Sunday .. 6=Saturday, matches time.Weekday
	StartTime    types.TimeString
	EndTime      types.TimeString
	// MaxBookings is the number of concurrent bookings the consultant
	// accepts inside this window.
	MaxBookings int
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the window contains the full [start, end) interval.
// A consultant cannot be available for only part of the required interval.
func (t *WeeklyTemplate) Covers(start, end types.TimeString) bool {
	return !start.IsBefore(t.StartTime) && !end.IsAfter(t.EndTime)
}

// Break is a window within a day where the consultant is unavailable
// regardless of templates. Recurring breaks repeat weekly (DayOfWeek set),
// one-off breaks apply to a single Date.
type Break struct {
	ID           int64
	ConsultantID int64
	DayOfWeek    *int       // recurring break, nil for one-off
	Date         *time.Time // one-off break, nil for recurring
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo reports whether the break is in effect on the given date
func (b *Break) AppliesTo(date time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.Date != nil {
		return sameDate(*b.Date, date)
	}
	if b.DayOfWeek != nil {
		return *b.DayOfWeek == int(date.Weekday())
	}
	return false
}

// Intersects reports whether the break overlaps [start, end).
// Touching boundaries do not count as an overlap.
func (b *Break) Intersects(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start)
}

// TimeOff is a date range with zero availability. It takes precedence over
// templates and breaks.
type TimeOff struct {
	ID           int64
	ConsultantID int64
	StartDate    time.Time
	EndDate      time.Time // inclusive
	Reason       *string
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the date falls inside the time-off range
func (t *TimeOff) Covers(date time.Time) bool {
	if !t.IsActive {
		return false
	}
	d := truncateToDate(date)
	return !d.Before(truncateToDate(t.StartDate)) && !d.After(truncateToDate(t.EndDate))
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

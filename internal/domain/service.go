package domain

import "time"

// Service represents a bookable consulting service.
//
// Buffer columns are nullable in storage; defaults are applied only by
// the accessors below so that a later change of the defaults never
// rewrites stored rows.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int

	BufferBeforeMinutes *int
	BufferAfterMinutes  *int

	RequiresPayment bool
	Price           float64
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BufferBefore returns the preparation buffer in minutes.
func (s *Service) BufferBefore() int {
	if s.BufferBeforeMinutes == nil {
		return DefaultBufferBeforeMinutes
	}
	return *s.BufferBeforeMinutes
}

// BufferAfter returns the wrap-up buffer in minutes.
func (s *Service) BufferAfter() int {
	if s.BufferAfterMinutes == nil {
		return DefaultBufferAfterMinutes
	}
	return *s.BufferAfterMinutes
}

// TotalDurationMinutes is the full slot footprint of the service:
// buffer before + consultation + buffer after. The slot grid step and
// the occupied interval of a booking are both derived from it.
func (s *Service) TotalDurationMinutes() int {
	return s.BufferBefore() + s.DurationMinutes + s.BufferAfter()
}

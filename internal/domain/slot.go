package domain

import "github.com/vmrkv/CST-BookingService/pkg/types"

// ConsultantCapacity is one consultant's remaining capacity for a slot
type ConsultantCapacity struct {
	ConsultantID      int64
	RemainingCapacity int
}

// AvailableSlot represents a candidate appointment start time on a date,
// annotated with the consultants free at that instant. Slots are derived,
// never persisted.
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	// Consultants holds only entries with RemainingCapacity >= 1
	Consultants   []ConsultantCapacity
	TotalCapacity int
}

// IsAvailable returns true if at least one consultant can take the slot
func (s *AvailableSlot) IsAvailable() bool {
	return s.TotalCapacity > 0
}

// CapacityFor returns the remaining capacity of a specific consultant
func (s *AvailableSlot) CapacityFor(consultantID int64) int {
	for _, c := range s.Consultants {
		if c.ConsultantID == consultantID {
			return c.RemainingCapacity
		}
	}
	return 0
}

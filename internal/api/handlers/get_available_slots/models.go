package get_available_slots

import (
	"github.com/vmrkv/CST-BookingService/internal/domain"
	getAvailableSlots "github.com/vmrkv/CST-BookingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date            string `json:"date"`
	ServiceID       int64  `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}

// Slot временной слот с детализацией по консультантам
type Slot struct {
	StartTime       string               `json:"startTime"`
	DurationMinutes int                  `json:"durationMinutes"`
	Available       bool                 `json:"available"`
	TotalCapacity   int                  `json:"totalCapacity"`
	Consultants     []ConsultantCapacity `json:"consultants"`
}

// ConsultantCapacity остаток ёмкости консультанта в слоте
type ConsultantCapacity struct {
	ConsultantID      int64 `json:"consultantId"`
	RemainingCapacity int   `json:"remainingCapacity"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		consultants := make([]ConsultantCapacity, len(s.Consultants))
		for j, c := range s.Consultants {
			consultants[j] = ConsultantCapacity{
				ConsultantID:      c.ConsultantID,
				RemainingCapacity: c.RemainingCapacity,
			}
		}
		slots[i] = Slot{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
			TotalCapacity:   s.TotalCapacity,
			Consultants:     consultants,
		}
	}

	return &SlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

package get_available_dates

import (
	"github.com/vmrkv/CST-BookingService/internal/domain"
	getAvailableDates "github.com/vmrkv/CST-BookingService/internal/usecase/get_available_dates"
)

// DatesResponse HTTP response model
type DatesResponse struct {
	ServiceID          int64           `json:"serviceId"`
	FirstAvailableDate *string         `json:"firstAvailableDate,omitempty"`
	Dates              []AvailableDate `json:"dates"`
}

// AvailableDate агрегат доступности на одну дату
type AvailableDate struct {
	Date           string `json:"date"`
	AvailableSlots int    `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *DatesResponse {
	dates := make([]AvailableDate, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = AvailableDate{
			Date:           d.Date.Format(domain.DateFormat),
			AvailableSlots: d.AvailableSlots,
		}
	}

	result := &DatesResponse{
		ServiceID: resp.ServiceID,
		Dates:     dates,
	}

	if resp.FirstAvailableDate != nil {
		first := resp.FirstAvailableDate.Format(domain.DateFormat)
		result.FirstAvailableDate = &first
	}

	return result
}

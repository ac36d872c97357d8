package create_booking

import (
	"time"

	"github.com/vmrkv/CST-BookingService/internal/domain"
	createBooking "github.com/vmrkv/CST-BookingService/internal/usecase/create_booking"
	"github.com/vmrkv/CST-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID             int64   `json:"serviceId"`
	Date                  string  `json:"date"`      // "2026-09-15"
	StartTime             string  `json:"startTime"` // "10:00"
	Strategy              string  `json:"strategy,omitempty"`
	PreferredConsultantID *int64  `json:"preferredConsultantId,omitempty"`
	CustomerName          string  `json:"customerName"`
	CustomerEmail         string  `json:"customerEmail"`
	CustomerPhone         *string `json:"customerPhone,omitempty"`
	CustomerCompany       *string `json:"customerCompany,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64   `json:"id"`
	Reference          string  `json:"reference"`
	ServiceID          int64   `json:"serviceId"`
	ConsultantID       int64   `json:"consultantId"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	PaymentStatus      string  `json:"paymentStatus"`
	ServiceName        string  `json:"serviceName"`
	ServicePrice       float64 `json:"servicePrice"`
	AssignmentStrategy string  `json:"assignmentStrategy"`
	AssignmentReason   string  `json:"assignmentReason"`
	ConfidenceScore    int     `json:"confidenceScore"`
	CustomerName       string  `json:"customerName"`
	CustomerEmail      string  `json:"customerEmail"`
	Notes              *string `json:"notes,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:             r.ServiceID,
		Date:                  date,
		StartTime:             startTime,
		Strategy:              r.Strategy,
		PreferredConsultantID: r.PreferredConsultantID,
		CustomerName:          r.CustomerName,
		CustomerEmail:         r.CustomerEmail,
		CustomerPhone:         r.CustomerPhone,
		CustomerCompany:       r.CustomerCompany,
		Notes:                 r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		Reference:          resp.Reference,
		ServiceID:          resp.ServiceID,
		ConsultantID:       resp.ConsultantID,
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		PaymentStatus:      resp.PaymentStatus,
		ServiceName:        resp.ServiceName,
		ServicePrice:       resp.ServicePrice,
		AssignmentStrategy: resp.AssignmentStrategy,
		AssignmentReason:   resp.AssignmentReason,
		ConfidenceScore:    resp.ConfidenceScore,
		CustomerName:       resp.CustomerName,
		CustomerEmail:      resp.CustomerEmail,
		Notes:              resp.Notes,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
	}
}

package list_services

import "github.com/vmrkv/CST-BookingService/internal/domain"

// ServiceResponse услуга каталога в HTTP ответе
type ServiceResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	DurationMinutes      int     `json:"durationMinutes"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	RequiresPayment      bool    `json:"requiresPayment"`
	Price                float64 `json:"price"`
}

// ServiceListResponse HTTP response model
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainServices конвертирует доменные услуги в HTTP response.
// Клиенту отдаётся и чистая длительность консультации, и полная
// длительность слота с буферами
func FromDomainServices(services []*domain.Service) *ServiceListResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, ServiceResponse{
			ID:                   s.ID,
			Name:                 s.Name,
			DurationMinutes:      s.DurationMinutes,
			TotalDurationMinutes: s.TotalDurationMinutes(),
			RequiresPayment:      s.RequiresPayment,
			Price:                s.Price,
		})
	}

	return &ServiceListResponse{Services: result}
}

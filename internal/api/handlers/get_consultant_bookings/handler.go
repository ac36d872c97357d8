package get_consultant_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vmrkv/CST-BookingService/internal/api/handlers"
	"github.com/vmrkv/CST-BookingService/internal/domain"
	bookingsService "github.com/vmrkv/CST-BookingService/internal/service/bookings"
	"github.com/vmrkv/CST-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidConsultantID = "некорректный идентификатор консультанта"
	msgInvalidDateFilter   = "некорректный фильтр по датам, ожидается YYYY-MM-DD"
	msgInvalidStatusFilter = "некорректный фильтр по статусу"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/bookings
// Query: startDate, endDate, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil || consultantID <= 0 {
		h.logger.Warn("GET /consultants/{id}/bookings - Invalid consultant id: %q", vars["consultantId"])
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	req := &models.GetConsultantBookingsRequest{
		ConsultantID: consultantID,
	}

	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /consultants/{id}/bookings - Invalid startDate %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /consultants/{id}/bookings - Invalid endDate %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		req.EndDate = &endDate
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("includeInactive"); raw != "" {
		req.IncludeInactive = raw == "true" || raw == "1"
	}

	result, err := h.service.GetConsultantBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /consultants/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatusFilter)

		default:
			h.logger.Error("GET /consultants/{id}/bookings - Failed: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/bookings - %d bookings returned: consultant_id=%d",
		len(result.Bookings), consultantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

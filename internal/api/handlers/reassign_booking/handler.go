package reassign_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vmrkv/CST-BookingService/internal/api/handlers"
	bookingsService "github.com/vmrkv/CST-BookingService/internal/service/bookings"
	"github.com/vmrkv/CST-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidBookingID       = "некорректный идентификатор бронирования"
	msgBookingNotFound        = "бронирование не найдено"
	msgConsultantNotFound     = "консультант не найден"
	msgCannotReassign         = "бронирование нельзя перевести в текущем статусе"
	msgConsultantNotAvailable = "консультант занят в интервале бронирования"
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

// Handle POST /api/v1/bookings/{bookingId}/reassign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{id}/reassign - Invalid booking id: %q", vars["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.ReassignBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reassign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Reassign(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reassign - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrConsultantNotFound):
			h.logger.Warn("POST /bookings/{id}/reassign - Consultant not found: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, bookingsService.ErrCannotReassign):
			h.logger.Warn("POST /bookings/{id}/reassign - Cannot reassign: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotReassign)

		case errors.Is(err, bookingsService.ErrConsultantNotAvailable):
			h.logger.Warn("POST /bookings/{id}/reassign - Consultant not available: booking_id=%d, consultant_id=%d",
				bookingID, req.ConsultantID)
			handlers.RespondError(w, http.StatusConflict, msgConsultantNotAvailable)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reassign - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/{id}/reassign - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reassign - Booking reassigned: booking_id=%d, consultant_id=%d",
		bookingID, req.ConsultantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

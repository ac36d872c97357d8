package create_booking

import (
	"errors"
	"net/http"

	"github.com/vmrkv/CST-BookingService/internal/api/handlers"
	createBooking "github.com/vmrkv/CST-BookingService/internal/usecase/create_booking"
	"github.com/vmrkv/CST-BookingService/pkg/metrics"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound        = "услуга не найдена"
	msgSlotNotAvailable       = "выбранный временной слот недоступен"
	msgConsultantNotAvailable = "запрошенный консультант недоступен в этом слоте"
	msgInvalidBookingDate     = "некорректная дата бронирования"
	msgDateTooFar             = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot        = "время начала не совпадает с сеткой слотов"
	msgTooLateToBook          = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase CreateBookingUseCase
	metrics *metrics.Metrics // nil, если метрики выключены
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: service_id=%d, date=%s, time=%s",
				req.ServiceID, req.Date, req.StartTime)
			h.countDenied()
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrConsultantNotAvailable):
			h.logger.Warn("POST /bookings - Consultant not available: service_id=%d, date=%s, time=%s",
				req.ServiceID, req.Date, req.StartTime)
			h.countDenied()
			handlers.RespondError(w, http.StatusConflict, msgConsultantNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: service_id=%d, date=%s", req.ServiceID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: service_id=%d, date=%s", req.ServiceID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: service_id=%d, time=%s", req.ServiceID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: service_id=%d, date=%s, time=%s",
				req.ServiceID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsCreated.WithLabelValues(result.AssignmentStrategy).Inc()
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, reference=%s, consultant_id=%d",
		result.ID, result.Reference, result.ConsultantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) countDenied() {
	if h.metrics != nil {
		h.metrics.BookingsDenied.Inc()
	}
}

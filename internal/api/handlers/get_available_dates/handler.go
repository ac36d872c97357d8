package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vmrkv/CST-BookingService/internal/api/handlers"
	getAvailableDates "github.com/vmrkv/CST-BookingService/internal/usecase/get_available_dates"
)

const (
	msgInvalidServiceID = "некорректный идентификатор услуги"
	msgInvalidDaysAhead = "некорректный параметр daysAhead"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-dates?daysAhead=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /available-dates - Invalid service id: %q", vars["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	daysAhead := 0
	if raw := r.URL.Query().Get("daysAhead"); raw != "" {
		daysAhead, err = strconv.Atoi(raw)
		if err != nil || daysAhead < 0 {
			h.logger.Warn("GET /available-dates - Invalid daysAhead: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDaysAhead)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		ServiceID: serviceID,
		DaysAhead: daysAhead,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrServiceNotFound):
			h.logger.Warn("GET /available-dates - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /available-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		default:
			h.logger.Error("GET /available-dates - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-dates - %d dates returned: service_id=%d", len(result.Dates), serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vmrkv/CST-BookingService/internal/api/handlers"
	scheduleService "github.com/vmrkv/CST-BookingService/internal/service/schedule"
)

const (
	msgInvalidConsultantID = "некорректный идентификатор консультанта"
	msgConsultantNotFound  = "консультант не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil || consultantID <= 0 {
		h.logger.Warn("GET /consultants/{id}/schedule - Invalid consultant id: %q", vars["consultantId"])
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	result, err := h.service.GetWeekSchedule(r.Context(), consultantID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrConsultantNotFound):
			h.logger.Warn("GET /consultants/{id}/schedule - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		default:
			h.logger.Error("GET /consultants/{id}/schedule - Failed: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/schedule - Schedule fetched: consultant_id=%d", consultantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

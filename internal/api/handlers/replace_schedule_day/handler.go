package replace_schedule_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vmrkv/CST-BookingService/internal/api/handlers"
	scheduleService "github.com/vmrkv/CST-BookingService/internal/service/schedule"
	"github.com/vmrkv/CST-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidConsultantID = "некорректный идентификатор консультанта"
	msgInvalidDayOfWeek    = "некорректный день недели, ожидается 0..6"
	msgConsultantNotFound  = "консультант не найден"
	msgWindowsOverlap      = "окна расписания пересекаются"
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

// Handle PUT /api/v1/consultants/{consultantId}/schedule/days/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil || consultantID <= 0 {
		h.logger.Warn("PUT /schedule/days - Invalid consultant id: %q", vars["consultantId"])
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
		h.logger.Warn("PUT /schedule/days - Invalid day of week: %q", vars["dayOfWeek"])
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req models.ReplaceDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceDay(r.Context(), consultantID, dayOfWeek, &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrConsultantNotFound):
			h.logger.Warn("PUT /schedule/days - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, scheduleService.ErrWindowsOverlap):
			h.logger.Warn("PUT /schedule/days - Windows overlap: consultant_id=%d, day=%d", consultantID, dayOfWeek)
			handlers.RespondBadRequest(w, msgWindowsOverlap)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /schedule/days - Failed: consultant_id=%d, day=%d, error=%v", consultantID, dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/days - Day replaced: consultant_id=%d, day=%d", consultantID, dayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}

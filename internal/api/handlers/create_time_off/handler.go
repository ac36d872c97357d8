package create_time_off

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

// Handle POST /api/v1/consultants/{consultantId}/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil || consultantID <= 0 {
		h.logger.Warn("POST /time-off - Invalid consultant id: %q", vars["consultantId"])
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	var req models.CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateTimeOff(r.Context(), consultantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrConsultantNotFound):
			h.logger.Warn("POST /time-off - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /time-off - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /time-off - Failed: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /time-off - Time off created: id=%d, consultant_id=%d", result.ID, consultantID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	getCalendar "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidMonth    = "некорректный формат месяца, ожидается YYYY-MM"
	msgMasterNotFound  = "мастер не найден"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/calendar/{month}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/calendar/{month} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getCalendar.Request{
		MasterID: masterID,
		Month:    vars["month"],
	})
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{id}/calendar/{month} - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, getCalendar.ErrInvalidMonth):
			h.logger.Warn("GET /masters/{id}/calendar/{month} - Invalid month %q", vars["month"])
			handlers.RespondBadRequest(w, msgInvalidMonth)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/calendar/{month} - Invalid input: master_id=%d: %v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /masters/{id}/calendar/{month} - Failed to build calendar: master_id=%d, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/calendar/{month} - Calendar built: master_id=%d, month=%s, days=%d",
		masterID, result.Month, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

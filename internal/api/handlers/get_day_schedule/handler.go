package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_schedule"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMasterNotFound  = "мастер не найден"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/schedule/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/schedule/{date} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /masters/{id}/schedule/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySchedule.Request{
		MasterID: masterID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{id}/schedule/{date} - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/schedule/{date} - Invalid input: master_id=%d: %v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /masters/{id}/schedule/{date} - Failed to get schedule: master_id=%d, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/schedule/{date} - Schedule retrieved: master_id=%d, date=%s, slots=%d",
		masterID, vars["date"], len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

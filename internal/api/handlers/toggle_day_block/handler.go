package toggle_day_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

const (
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMasterNotFound     = "мастер не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/masters/{masterId}/schedule/day-block
// Без поля blocked в теле состояние переключается, с полем - выставляется явно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /masters/{id}/schedule/day-block - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /masters/{id}/schedule/day-block - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Управлять расписанием может только сам мастер
	if userID != masterID {
		h.logger.Warn("POST /masters/{id}/schedule/day-block - Access denied: master_id=%d, user_id=%d",
			masterID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.ToggleDayBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /masters/{id}/schedule/day-block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ToggleDayBlock(r.Context(), masterID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrMasterNotFound):
			h.logger.Warn("POST /masters/{id}/schedule/day-block - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, schedule.ErrInvalidDate):
			h.logger.Warn("POST /masters/{id}/schedule/day-block - Invalid date %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /masters/{id}/schedule/day-block - Failed to toggle: master_id=%d, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /masters/{id}/schedule/day-block - Toggled: master_id=%d, date=%s, blocked=%v",
		masterID, result.Date, result.Blocked)
	handlers.RespondJSON(w, http.StatusOK, result)
}

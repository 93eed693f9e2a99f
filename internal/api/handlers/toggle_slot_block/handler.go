package toggle_slot_block

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
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgSlotOutsideGrid    = "время не совпадает с рабочей сеткой слотов"
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

// Handle POST /api/v1/masters/{masterId}/schedule/slot-block
// Переключение несимметрично: первый вызов для свободной ячейки блокирует её
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /masters/{id}/schedule/slot-block - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /masters/{id}/schedule/slot-block - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Управлять расписанием может только сам мастер
	if userID != masterID {
		h.logger.Warn("POST /masters/{id}/schedule/slot-block - Access denied: master_id=%d, user_id=%d",
			masterID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.ToggleSlotBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /masters/{id}/schedule/slot-block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ToggleSlotBlock(r.Context(), masterID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrMasterNotFound):
			h.logger.Warn("POST /masters/{id}/schedule/slot-block - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, schedule.ErrInvalidDate):
			h.logger.Warn("POST /masters/{id}/schedule/slot-block - Invalid date %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, schedule.ErrSlotOutsideGrid):
			h.logger.Warn("POST /masters/{id}/schedule/slot-block - Slot outside grid: %s", req.StartTime)
			handlers.RespondBadRequest(w, msgSlotOutsideGrid)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /masters/{id}/schedule/slot-block - Invalid time %q: %v", req.StartTime, err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		default:
			h.logger.Error("POST /masters/{id}/schedule/slot-block - Failed to toggle: master_id=%d, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /masters/{id}/schedule/slot-block - Toggled: master_id=%d, date=%s, slot=%s, blocked=%v",
		masterID, result.Date, result.StartTime, result.Blocked)
	handlers.RespondJSON(w, http.StatusOK, result)
}

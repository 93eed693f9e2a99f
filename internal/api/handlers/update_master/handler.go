package update_master

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/masters"
	"github.com/m04kA/SMC-ScheduleService/internal/service/masters/models"
)

const (
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMasterNotFound     = "мастер не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service MasterService
	logger  Logger
}

func NewHandler(service MasterService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/masters/{masterId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /masters/{id} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /masters/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Редактировать профиль может только сам мастер
	if userID != masterID {
		h.logger.Warn("PATCH /masters/{id} - Access denied: master_id=%d, user_id=%d", masterID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.UpdateMasterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /masters/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), masterID, &req)
	if err != nil {
		switch {
		case errors.Is(err, masters.ErrMasterNotFound):
			h.logger.Warn("PATCH /masters/{id} - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, masters.ErrInvalidInput):
			h.logger.Warn("PATCH /masters/{id} - Invalid input: master_id=%d: %v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /masters/{id} - Failed to update master: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /masters/{id} - Master updated successfully: master_id=%d", masterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package delete_master

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/masters"
)

const (
	msgInvalidMasterID   = "некорректный ID мастера"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgMasterNotFound    = "мастер не найден"
	msgForbidden         = "доступ запрещен"
	msgHasActiveBookings = "у мастера есть активные бронирования, сначала отмените их"
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

// Handle DELETE /api/v1/masters/{masterId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /masters/{id} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /masters/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удалить профиль может только сам мастер
	if userID != masterID {
		h.logger.Warn("DELETE /masters/{id} - Access denied: master_id=%d, user_id=%d", masterID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	if err := h.service.Delete(r.Context(), masterID); err != nil {
		switch {
		case errors.Is(err, masters.ErrMasterNotFound):
			h.logger.Warn("DELETE /masters/{id} - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, masters.ErrHasActiveBookings):
			h.logger.Warn("DELETE /masters/{id} - Master has active bookings: master_id=%d", masterID)
			handlers.RespondConflict(w, msgHasActiveBookings)

		default:
			h.logger.Error("DELETE /masters/{id} - Failed to delete master: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /masters/{id} - Master deleted successfully: master_id=%d", masterID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

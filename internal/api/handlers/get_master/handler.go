package get_master

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/masters"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgMasterNotFound  = "мастер не найден"
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

// Handle GET /api/v1/masters/{masterId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	result, err := h.service.GetByID(r.Context(), masterID)
	if err != nil {
		switch {
		case errors.Is(err, masters.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{id} - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		default:
			h.logger.Error("GET /masters/{id} - Failed to get master: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id} - Master retrieved successfully: master_id=%d", masterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

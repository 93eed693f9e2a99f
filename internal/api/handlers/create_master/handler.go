package create_master

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/masters"
	"github.com/m04kA/SMC-ScheduleService/internal/service/masters/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidName        = "некорректное имя мастера"
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

// Handle POST /api/v1/masters
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMasterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /masters - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, masters.ErrInvalidInput):
			h.logger.Warn("POST /masters - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidName)

		default:
			h.logger.Error("POST /masters - Failed to create master: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /masters - Master created successfully: master_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

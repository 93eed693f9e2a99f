package get_master_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidFilter   = "некорректные параметры фильтра"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/bookings?startDate=...&endDate=...&status=...&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/bookings - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := parseQuery(masterID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /masters/{id}/bookings - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetMasterBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /masters/{id}/bookings - Access denied: master_id=%d, user_id=%d",
				masterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/bookings - Invalid filter: master_id=%d: %v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /masters/{id}/bookings - Failed to get bookings: master_id=%d, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/bookings - Retrieved %d bookings for master_id=%d",
		len(result.Bookings), masterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMasterNotFound     = "мастер не найден"
	msgSlotTaken          = "выбранный слот уже занят"
	msgDayBlocked         = "мастер не работает в выбранный день"
	msgSlotBlocked        = "выбранный слот недоступен"
	msgSlotInPast         = "выбранный слот уже прошел"
	msgSlotOutsideGrid    = "время не совпадает с рабочей сеткой слотов"
	msgInvalidDate        = "некорректная дата бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%d, master_id=%d", userID, req.MasterID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrDayBlocked):
			h.logger.Warn("POST /bookings - Day blocked: user_id=%d, master_id=%d", userID, req.MasterID)
			handlers.RespondConflict(w, msgDayBlocked)

		case errors.Is(err, createBooking.ErrSlotBlocked):
			h.logger.Warn("POST /bookings - Slot blocked: user_id=%d, master_id=%d", userID, req.MasterID)
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: user_id=%d, master_id=%d", userID, req.MasterID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrSlotOutsideGrid):
			h.logger.Warn("POST /bookings - Slot outside grid: user_id=%d, master_id=%d", userID, req.MasterID)
			handlers.RespondBadRequest(w, msgSlotOutsideGrid)

		case errors.Is(err, createBooking.ErrMasterNotFound):
			h.logger.Warn("POST /bookings - Master not found: master_id=%d", req.MasterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, master_id=%d", userID, req.MasterID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, master_id=%d: %v", userID, req.MasterID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, master_id=%d, error=%v",
				userID, req.MasterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, master_id=%d",
		result.ID, userID, req.MasterID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

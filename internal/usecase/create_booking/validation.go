package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.MasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}

// validateOnGrid проверяет, что время совпадает с началом одного из слотов сетки
func validateOnGrid(startTime types.TimeString, cfg Config) error {
	grid, err := domain.GenerateSlots(cfg.OpenTime, cfg.CloseTime, cfg.SlotDurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	for _, slot := range grid {
		if slot == startTime {
			return nil
		}
	}

	return fmt.Errorf("%w: %s (grid %s-%s, step %d min)",
		ErrSlotOutsideGrid, startTime, cfg.OpenTime, cfg.CloseTime, cfg.SlotDurationMinutes)
}

// slotStatusToError конвертирует статус слота в ошибку usecase
// Только открытый слот можно бронировать
func slotStatusToError(status domain.SlotStatus) error {
	switch status {
	case domain.SlotOpen:
		return nil
	case domain.SlotPast:
		return ErrSlotInPast
	case domain.SlotBlockedDay:
		return ErrDayBlocked
	case domain.SlotBlockedSlot:
		return ErrSlotBlocked
	case domain.SlotTaken:
		return ErrSlotTaken
	default:
		return fmt.Errorf("%w: unexpected slot status %q", ErrInternal, status)
	}
}

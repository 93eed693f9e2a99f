package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	storage "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/master"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Grid рабочая сетка слотов, общая для всех мастеров
type Grid struct {
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
}

// Service сервис управления переопределениями расписания
type Service struct {
	scheduleRepo ScheduleRepository
	masterRepo   MasterRepository
	grid         Grid
	logger       Logger
}

// NewService создает новый сервис расписания
func NewService(scheduleRepo ScheduleRepository, masterRepo MasterRepository, grid Grid, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		masterRepo:   masterRepo,
		grid:         grid,
		logger:       logger,
	}
}

// ToggleDayBlock переключает блокировку дня мастера
// Blocked == nil переключает текущее состояние (первый toggle всегда
// блокирует), иначе выставляет указанное значение явно.
// Существующие бронирования при блокировке дня не отменяются.
func (s *Service) ToggleDayBlock(ctx context.Context, masterID int64, req *models.ToggleDayBlockRequest) (*models.DayBlockResponse, error) {
	if err := s.checkMasterExists(ctx, masterID, "ToggleDayBlock"); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: ToggleDayBlock - date %q: %v", ErrInvalidDate, req.Date, err)
	}

	var override *domain.DayOverride
	if req.Blocked != nil {
		override, err = s.scheduleRepo.SetDayOverride(ctx, masterID, date, *req.Blocked)
	} else {
		override, err = s.scheduleRepo.ToggleDayOverride(ctx, masterID, date)
	}
	if err != nil {
		s.logger.Error("Service.Schedule: failed to toggle day block for master_id=%d date=%s: %v", masterID, req.Date, err)
		return nil, fmt.Errorf("%w: ToggleDayBlock - master_id %d date %s: %v", ErrInternal, masterID, req.Date, err)
	}

	s.logger.Info("Service.Schedule: master_id=%d date=%s day_blocked=%v", masterID, req.Date, override.IsBlocked)

	return models.FromDomainDayOverride(override), nil
}

// ToggleSlotBlock переключает ручную блокировку одного слота
// Время должно лежать на рабочей сетке. Первый toggle всегда блокирует.
// Активное бронирование в этой ячейке при блокировке не отменяется.
func (s *Service) ToggleSlotBlock(ctx context.Context, masterID int64, req *models.ToggleSlotBlockRequest) (*models.SlotBlockResponse, error) {
	if err := s.checkMasterExists(ctx, masterID, "ToggleSlotBlock"); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: ToggleSlotBlock - date %q: %v", ErrInvalidDate, req.Date, err)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: ToggleSlotBlock - start_time %q: %v", ErrInvalidInput, req.StartTime, err)
	}

	if !s.onGrid(startTime) {
		return nil, fmt.Errorf("%w: ToggleSlotBlock - start_time %s (grid %s-%s, step %d min)",
			ErrSlotOutsideGrid, startTime, s.grid.OpenTime, s.grid.CloseTime, s.grid.SlotDurationMinutes)
	}

	blocked, err := s.scheduleRepo.ToggleSlotOverride(ctx, masterID, date, startTime)
	if err != nil {
		s.logger.Error("Service.Schedule: failed to toggle slot block for master_id=%d date=%s slot=%s: %v",
			masterID, req.Date, startTime, err)
		return nil, fmt.Errorf("%w: ToggleSlotBlock - master_id %d date %s slot %s: %v",
			ErrInternal, masterID, req.Date, startTime, err)
	}

	s.logger.Info("Service.Schedule: master_id=%d date=%s slot=%s blocked=%v", masterID, req.Date, startTime, blocked)

	return &models.SlotBlockResponse{
		MasterID:  masterID,
		Date:      req.Date,
		StartTime: startTime.String(),
		Blocked:   blocked,
	}, nil
}

func (s *Service) checkMasterExists(ctx context.Context, masterID int64, op string) error {
	if _, err := s.masterRepo.GetByID(ctx, masterID); err != nil {
		if errors.Is(err, storage.ErrMasterNotFound) {
			return fmt.Errorf("%w: %s - master_id: %d", ErrMasterNotFound, op, masterID)
		}
		s.logger.Error("Service.Schedule: failed to get master_id=%d: %v", masterID, err)
		return fmt.Errorf("%w: %s - master_id %d: %v", ErrInternal, op, masterID, err)
	}
	return nil
}

// onGrid проверяет, что время совпадает с началом одного из слотов сетки
func (s *Service) onGrid(t types.TimeString) bool {
	grid, err := domain.GenerateSlots(s.grid.OpenTime, s.grid.CloseTime, s.grid.SlotDurationMinutes)
	if err != nil {
		return false
	}

	for _, slot := range grid {
		if slot == t {
			return true
		}
	}

	return false
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(domain.DateFormat, value)
}

package get_day_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	masterRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/master"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
)

// UseCase use case для получения расписания дня мастера
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	masterRepo   MasterRepository
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	masterRepo MasterRepository,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		masterRepo:   masterRepo,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute выполняет use case получения расписания дня
// Каждый слот сетки классифицируется тем же резолвером, что и при
// создании бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: user=%d, master=%d, date=%s",
		req.UserID, req.MasterID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.MasterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Мастер существует
	if _, err := uc.masterRepo.GetByID(ctx, req.MasterID); err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			uc.logger.Warn("GetDaySchedule: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetDaySchedule: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 3. Собираем снимок дня
	dayBlocked := false
	override, err := uc.scheduleRepo.GetDayOverride(ctx, req.MasterID, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("GetDaySchedule: failed to get day override: %v", err)
		return nil, fmt.Errorf("%w: failed to get day override: %v", ErrInternal, err)
	}
	if override != nil {
		dayBlocked = override.IsBlocked
	}

	blockedSlots, err := uc.scheduleRepo.GetBlockedSlots(ctx, req.MasterID, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByMasterAndDate(ctx, req.MasterID, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	sched := &domain.DaySchedule{
		DayBlocked:   dayBlocked,
		BlockedSlots: blockedSlots,
		Bookings:     bookings,
	}

	// 4. Генерируем сетку и классифицируем слоты
	grid, err := domain.GenerateSlots(uc.cfg.OpenTime, uc.cfg.CloseTime, uc.cfg.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	resolved := domain.ResolveDay(grid, req.Date, now, uc.cfg.SlotDurationMinutes, sched)

	slots := make([]Slot, len(resolved))
	for i, rs := range resolved {
		slots[i] = Slot{
			StartTime:       rs.StartTime,
			DurationMinutes: rs.DurationMinutes,
			Status:          string(rs.Status),
			Bookable:        rs.IsBookable(),
		}
	}

	uc.logger.Info("GetDaySchedule: resolved %d slots for master=%d, date=%s",
		len(slots), req.MasterID, req.Date.Format(domain.DateFormat))

	return &Response{
		MasterID:   req.MasterID,
		Date:       req.Date,
		DayBlocked: dayBlocked,
		Slots:      slots,
	}, nil
}

package get_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	masterRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/master"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// UseCase use case для получения календаря месяца с маркерами занятости
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

// Execute выполняет use case построения календаря
// Маркер дня сворачивается из статусов слотов: full - нет открытых,
// free - все открыты, иначе partial. Данные месяца читаются тремя
// range-запросами, день за днём в БД не ходим.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: user=%d, master=%d, month=%s", req.UserID, req.MasterID, req.Month)

	// 1. Валидация входных данных
	if req.MasterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	monthStart, err := time.Parse(domain.MonthFormat, req.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %q, expected format YYYY-MM", ErrInvalidMonth, req.Month)
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	// 2. Мастер существует
	if _, err := uc.masterRepo.GetByID(ctx, req.MasterID); err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			uc.logger.Warn("GetCalendar: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetCalendar: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 3. Читаем данные месяца range-запросами
	dayOverrides, err := uc.scheduleRepo.GetDayOverridesInRange(ctx, req.MasterID, monthStart, monthEnd)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get day overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get day overrides: %v", ErrInternal, err)
	}

	blockedSlots, err := uc.scheduleRepo.GetBlockedSlotsInRange(ctx, req.MasterID, monthStart, monthEnd)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	filter := domain.MasterBookingsFilter{
		MasterID:  req.MasterID,
		StartDate: &monthStart,
		EndDate:   &monthEnd,
	}
	bookings, err := uc.bookingRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	bookingsByDate := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		key := b.BookingDate.Format(domain.DateFormat)
		bookingsByDate[key] = append(bookingsByDate[key], b)
	}

	// 4. Генерируем сетку один раз, дальше только резолвим
	grid, err := domain.GenerateSlots(uc.cfg.OpenTime, uc.cfg.CloseTime, uc.cfg.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	days := make([]Day, 0, monthEnd.Day())
	for date := monthStart; !date.After(monthEnd); date = date.AddDate(0, 0, 1) {
		key := date.Format(domain.DateFormat)

		blocked := blockedSlots[key]
		if blocked == nil {
			blocked = map[types.TimeString]bool{}
		}

		sched := &domain.DaySchedule{
			DayBlocked:   dayOverrides[key],
			BlockedSlots: blocked,
			Bookings:     bookingsByDate[key],
		}

		resolved := domain.ResolveDay(grid, date, now, uc.cfg.SlotDurationMinutes, sched)

		days = append(days, Day{
			Date:   key,
			Marker: string(domain.DayMarkerFor(resolved)),
		})
	}

	uc.logger.Info("GetCalendar: built %d day markers for master=%d, month=%s",
		len(days), req.MasterID, req.Month)

	return &Response{
		MasterID: req.MasterID,
		Month:    req.Month,
		Days:     days,
	}, nil
}

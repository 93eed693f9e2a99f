package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	masterRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/master"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduler/reminders"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	masterRepo   MasterRepository
	notifier     Notifier
	reminder     ReminderScheduler
	txManager    TransactionManager
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	masterRepo MasterRepository,
	notifier Notifier,
	reminder ReminderScheduler,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		masterRepo:   masterRepo,
		notifier:     notifier,
		reminder:     reminder,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Слот перепроверяется внутри сериализуемой транзакции тем же резолвером,
// что и при отображении расписания: показанный пользователю статус и
// результат записи не могут разойтись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, master=%d, date=%s, time=%s",
		req.UserID, req.MasterID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Время лежит на рабочей сетке
	if err := validateOnGrid(req.StartTime, uc.cfg); err != nil {
		uc.logger.Warn("CreateBooking: grid validation failed: %v", err)
		return nil, err
	}

	// 4. Мастер существует
	master, err := uc.masterRepo.GetByID(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			uc.logger.Warn("CreateBooking: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("CreateBooking: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 5. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Собираем снимок дня: блокировка дня, заблокированные слоты,
		// активные бронирования (с блокировкой строк FOR UPDATE)
		sched, err := uc.loadDaySchedule(txCtx, req)
		if err != nil {
			return err
		}

		// 5.2. Перепроверяем статус слота
		status := domain.ResolveSlot(req.StartTime, req.Date, now, uc.cfg.SlotDurationMinutes, sched)
		if err := slotStatusToError(status); err != nil {
			uc.logger.Warn("CreateBooking: slot %s on %s not bookable, status=%s",
				req.StartTime, req.Date.Format(domain.DateFormat), status)
			return err
		}

		// 5.3. Создаем бронирование
		booking := &domain.Booking{
			MasterID:        req.MasterID,
			UserID:          req.UserID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: uc.cfg.SlotDurationMinutes,
			Status:          domain.StatusActive,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Частичный уникальный индекс - страховка на случай гонки,
			// которую не поймала сериализуемая транзакция
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s on %s taken concurrently",
					req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 6. Подтверждение и напоминание после фиксации транзакции,
	// доставка не влияет на результат бронирования
	uc.sendConfirmation(ctx, result, master)
	uc.scheduleReminder(ctx, result, master)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		MasterID:        result.MasterID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// loadDaySchedule собирает снимок дня мастера внутри транзакции
func (uc *UseCase) loadDaySchedule(ctx context.Context, req *Request) (*domain.DaySchedule, error) {
	dayBlocked := false
	override, err := uc.scheduleRepo.GetDayOverride(ctx, req.MasterID, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("CreateBooking: failed to get day override: %v", err)
		return nil, fmt.Errorf("%w: failed to get day override: %v", ErrInternal, err)
	}
	if override != nil {
		dayBlocked = override.IsBlocked
	}

	blockedSlots, err := uc.scheduleRepo.GetBlockedSlots(ctx, req.MasterID, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByMasterAndDate(ctx, req.MasterID, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return &domain.DaySchedule{
		DayBlocked:   dayBlocked,
		BlockedSlots: blockedSlots,
		Bookings:     bookings,
	}, nil
}

// sendConfirmation отправляет пользователю подтверждение записи
func (uc *UseCase) sendConfirmation(ctx context.Context, booking *domain.Booking, master *domain.Master) {
	text := fmt.Sprintf("Вы записаны к мастеру %s на %s в %s.",
		master.Name, booking.BookingDate.Format(domain.DateFormat), booking.StartTime)
	uc.notifier.SendMessageBestEffort(ctx, booking.UserID, text)
}

// scheduleReminder ставит напоминание в очередь
// Если до начала осталось меньше интервала напоминания, задача не ставится
func (uc *UseCase) scheduleReminder(ctx context.Context, booking *domain.Booking, master *domain.Master) {
	startsAt, err := booking.StartsAt()
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to compute start time for reminder, booking id=%d: %v", booking.ID, err)
		return
	}

	fireAt := startsAt.Add(-time.Duration(uc.cfg.ReminderHoursBefore) * time.Hour)
	if !fireAt.After(uc.timeProvider.Now()) {
		uc.logger.Info("CreateBooking: booking id=%d starts too soon, reminder skipped", booking.ID)
		return
	}

	uc.reminder.ScheduleBestEffort(ctx, fireAt, reminders.Payload{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		MasterName:  master.Name,
		BookingDate: booking.BookingDate.Format(domain.DateFormat),
		StartTime:   booking.StartTime.String(),
	})
}

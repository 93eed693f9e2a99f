package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	masterRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/master"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduler/reminders"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	createErr error
	created   []*domain.Booking
	nextID    int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	b.ID = f.nextID
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBookingRepo) GetByMasterAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	dayBlocked   bool
	hasOverride  bool
	blockedSlots map[types.TimeString]bool
}

func (f *fakeScheduleRepo) GetDayOverride(_ context.Context, masterID int64, date time.Time) (*domain.DayOverride, error) {
	if !f.hasOverride {
		return nil, scheduleRepo.ErrOverrideNotFound
	}
	return &domain.DayOverride{MasterID: masterID, Date: date, IsBlocked: f.dayBlocked}, nil
}

func (f *fakeScheduleRepo) GetBlockedSlots(_ context.Context, _ int64, _ time.Time) (map[types.TimeString]bool, error) {
	if f.blockedSlots == nil {
		return map[types.TimeString]bool{}, nil
	}
	return f.blockedSlots, nil
}

type fakeMasterRepo struct {
	master *domain.Master
	err    error
}

func (f *fakeMasterRepo) GetByID(_ context.Context, _ int64) (*domain.Master, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.master, nil
}

type fakeNotifier struct {
	messages []string
	userIDs  []int64
}

func (f *fakeNotifier) SendMessageBestEffort(_ context.Context, userID int64, text string) {
	f.userIDs = append(f.userIDs, userID)
	f.messages = append(f.messages, text)
}

type fakeReminder struct {
	fireAts  []time.Time
	payloads []reminders.Payload
}

func (f *fakeReminder) ScheduleBestEffort(_ context.Context, fireAt time.Time, payload reminders.Payload) {
	f.fireAts = append(f.fireAts, fireAt)
	f.payloads = append(f.payloads, payload)
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testConfig() Config {
	return Config{
		OpenTime:            "10:00",
		CloseTime:           "22:00",
		SlotDurationMinutes: 60,
		ReminderHoursBefore: 24,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, sched *fakeScheduleRepo, master *fakeMasterRepo, notifier *fakeNotifier, reminder *fakeReminder, now time.Time) *UseCase {
	uc := NewUseCase(bookings, sched, master, notifier, reminder, &fakeTxManager{}, testConfig(), noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:    100,
		MasterID:  1,
		Date:      time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "12:00",
	}
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	notifier := &fakeNotifier{}
	reminder := &fakeReminder{}
	master := &fakeMasterRepo{master: &domain.Master{ID: 1, Name: "Анна"}}
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, master, notifier, reminder, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)

	// Подтверждение клиенту
	require.Len(t, notifier.userIDs, 1)
	assert.Equal(t, int64(100), notifier.userIDs[0])

	// Напоминание за 24 часа до начала
	require.Len(t, reminder.fireAts, 1)
	expectedFireAt := time.Date(2025, time.October, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, expectedFireAt, reminder.fireAts[0])
	assert.Equal(t, int64(1), reminder.payloads[0].BookingID)
}

func TestExecute_SlotTaken(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{{
			StartTime:       "12:00",
			DurationMinutes: 60,
			Status:          domain.StatusActive,
		}},
	}
	notifier := &fakeNotifier{}
	reminder := &fakeReminder{}
	master := &fakeMasterRepo{master: &domain.Master{ID: 1, Name: "Анна"}}
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, master, notifier, reminder, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, bookings.created)
	assert.Empty(t, notifier.messages)
	assert.Empty(t, reminder.fireAts)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{{
			StartTime:       "12:00",
			DurationMinutes: 60,
			Status:          domain.StatusCancelledByUser,
		}},
	}
	master := &fakeMasterRepo{master: &domain.Master{ID: 1, Name: "Анна"}}
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, master, &fakeNotifier{}, &fakeReminder{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.Len(t, bookings.created, 1)
}

func TestExecute_DayBlocked(t *testing.T) {
	sched := &fakeScheduleRepo{hasOverride: true, dayBlocked: true}
	master := &fakeMasterRepo{master: &domain.Master{ID: 1, Name: "Анна"}}
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, sched, master, &fakeNotifier{}, &fakeReminder{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDayBlocked)
}

func TestExecute_SlotBlocked(t *testing.T) {
	sched := &fakeScheduleRepo{blockedSlots: map[types.TimeString]bool{"12:00": true}}
	master := &fakeMasterRepo{master: &domain.Master{ID: 1, Name: "Анна"}}
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, sched, master, &fakeNotifier{}, &fakeReminder{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestExecute_SlotInPast(t *testing.T) {
	master := &fakeMasterRepo{master: &domain.Master{ID: 1, Name: "Анна"}}
	now := time.Date(2025, time.October, 15, 13, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, master, &fakeNotifier{}, &fakeReminder{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_DateInPast(t *testing.T) {
	master := &fakeMasterRepo{master: &domain.Master{ID: 1, Name: "Анна"}}
	now := time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, master, &fakeNotifier{}, &fakeReminder{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SlotOutsideGrid(t *testing.T) {
	master := &fakeMasterRepo{master: &domain.Master{ID: 1, Name: "Анна"}}
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, master, &fakeNotifier{}, &fakeReminder{}, now)

	req := validRequest()
	req.StartTime = "12:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotOutsideGrid)
}

func TestExecute_MasterNotFound(t *testing.T) {
	master := &fakeMasterRepo{err: masterRepo.ErrMasterNotFound}
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, master, &fakeNotifier{}, &fakeReminder{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMasterNotFound)
}

func TestExecute_ConcurrentInsertMapsToSlotTaken(t *testing.T) {
	// Сериализуемая транзакция не заметила гонку, сработал частичный
	// уникальный индекс на вставке
	bookings := &fakeBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	master := &fakeMasterRepo{master: &domain.Master{ID: 1, Name: "Анна"}}
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, master, &fakeNotifier{}, &fakeReminder{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ReminderSkippedWhenBookingSoon(t *testing.T) {
	bookings := &fakeBookingRepo{}
	notifier := &fakeNotifier{}
	reminder := &fakeReminder{}
	master := &fakeMasterRepo{master: &domain.Master{ID: 1, Name: "Анна"}}

	// До начала меньше 24 часов - напоминание не ставится
	now := time.Date(2025, time.October, 15, 9, 0, 0, 0, time.UTC)

	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, master, notifier, reminder, now)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Len(t, notifier.messages, 1)
	assert.Empty(t, reminder.fireAts)
}

package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	storage "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	booking    *domain.Booking
	getErr     error
	cancelErr  error
	cancelled  []domain.BookingStatus
	cancelIDs  []int64
	lastReason string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) GetByMasterWithFilter(_ context.Context, _ domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelIDs = append(f.cancelIDs, id)
	f.cancelled = append(f.cancelled, status)
	f.lastReason = reason
	f.booking.Status = status
	if reason != "" {
		f.booking.CancellationReason = &reason
	}
	return nil
}

type fakeMasterRepo struct{}

func (f *fakeMasterRepo) GetByID(_ context.Context, id int64) (*domain.Master, error) {
	return &domain.Master{ID: id, Name: "Анна"}, nil
}

type fakeNotifier struct {
	userIDs []int64
}

func (f *fakeNotifier) SendMessageBestEffort(_ context.Context, userID int64, _ string) {
	f.userIDs = append(f.userIDs, userID)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:              7,
		MasterID:        1,
		UserID:          100,
		BookingDate:     time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "12:00",
		DurationMinutes: 60,
		Status:          domain.StatusActive,
	}
}

func newTestService(repo *fakeBookingRepo, notifier *fakeNotifier) *Service {
	return NewService(repo, &fakeMasterRepo{}, notifier, &RealTimeProvider{}, noopLogger{})
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking()}
	svc := newTestService(repo, &fakeNotifier{})

	t.Run("client sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 7, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
	})

	t.Run("master sees booking to them", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 7, 1)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 7, 999)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: storage.ErrBookingNotFound}
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.GetByID(context.Background(), 7, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByUser(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking()}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{
		UserID:             100,
		CancellationReason: "не смогу прийти",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelledByUser), resp.Status)
	require.Len(t, repo.cancelled, 1)
	assert.Equal(t, domain.StatusCancelledByUser, repo.cancelled[0])
	assert.Equal(t, "не смогу прийти", repo.lastReason)

	// Уведомляется мастер, а не клиент
	require.Len(t, notifier.userIDs, 1)
	assert.Equal(t, int64(1), notifier.userIDs[0])
}

func TestCancel_ByMaster(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking()}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelledByMaster), resp.Status)

	// Уведомляется клиент
	require.Len(t, notifier.userIDs, 1)
	assert.Equal(t, int64(100), notifier.userIDs[0])
}

func TestCancel_Idempotence(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking()}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	_, err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: 100})
	require.NoError(t, err)

	// Повторная отмена: состояние не меняется, уведомление не дублируется
	_, err = svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: 100})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	assert.Len(t, repo.cancelled, 1)
	assert.Len(t, notifier.userIDs, 1)
}

func TestCancel_Stranger(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking()}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	_, err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
	assert.Empty(t, notifier.userIDs)
}

func TestCancel_ConcurrentCancel(t *testing.T) {
	// Между чтением и обновлением бронирование отменил кто-то другой
	repo := &fakeBookingRepo{booking: activeBooking(), cancelErr: storage.ErrBookingNotFound}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	_, err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: 100})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Empty(t, notifier.userIDs)
}

func TestGetMasterBookings_OnlyMaster(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking()}
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.GetMasterBookings(context.Background(), &models.GetMasterBookingsRequest{
		MasterID: 1,
		UserID:   100,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetMasterBookings(context.Background(), &models.GetMasterBookingsRequest{
		MasterID: 1,
		UserID:   1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking()}
	svc := newTestService(repo, &fakeNotifier{})

	bad := "nonsense"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

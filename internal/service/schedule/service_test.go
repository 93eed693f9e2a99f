package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	masterRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/master"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// fakeScheduleRepo воспроизводит несимметричную семантику toggle:
// первый вызов для несуществующей строки всегда блокирует
type fakeScheduleRepo struct {
	dayOverrides  map[string]bool
	slotOverrides map[string]bool
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		dayOverrides:  map[string]bool{},
		slotOverrides: map[string]bool{},
	}
}

func dayKey(masterID int64, date time.Time) string {
	return date.Format(domain.DateFormat)
}

func (f *fakeScheduleRepo) SetDayOverride(_ context.Context, masterID int64, date time.Time, isBlocked bool) (*domain.DayOverride, error) {
	f.dayOverrides[dayKey(masterID, date)] = isBlocked
	return &domain.DayOverride{MasterID: masterID, Date: date, IsBlocked: isBlocked}, nil
}

func (f *fakeScheduleRepo) ToggleDayOverride(_ context.Context, masterID int64, date time.Time) (*domain.DayOverride, error) {
	key := dayKey(masterID, date)
	current, exists := f.dayOverrides[key]
	if !exists {
		f.dayOverrides[key] = true
	} else {
		f.dayOverrides[key] = !current
	}
	return &domain.DayOverride{MasterID: masterID, Date: date, IsBlocked: f.dayOverrides[key]}, nil
}

func (f *fakeScheduleRepo) ToggleSlotOverride(_ context.Context, masterID int64, date time.Time, startTime types.TimeString) (bool, error) {
	key := dayKey(masterID, date) + "/" + startTime.String()
	current, exists := f.slotOverrides[key]
	if !exists {
		f.slotOverrides[key] = true
	} else {
		f.slotOverrides[key] = !current
	}
	return f.slotOverrides[key], nil
}

type fakeMasterRepo struct {
	exists bool
}

func (f *fakeMasterRepo) GetByID(_ context.Context, id int64) (*domain.Master, error) {
	if !f.exists {
		return nil, masterRepo.ErrMasterNotFound
	}
	return &domain.Master{ID: id, Name: "Анна"}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testGrid() Grid {
	return Grid{
		OpenTime:            "10:00",
		CloseTime:           "22:00",
		SlotDurationMinutes: 60,
	}
}

func newTestService(repo ScheduleRepository, masterExists bool) *Service {
	return NewService(repo, &fakeMasterRepo{exists: masterExists}, testGrid(), noopLogger{})
}

func TestToggleDayBlock_Asymmetry(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newTestService(repo, true)

	req := &models.ToggleDayBlockRequest{Date: "2025-10-15"}

	// Первый toggle всегда блокирует
	resp, err := svc.ToggleDayBlock(context.Background(), 1, req)
	require.NoError(t, err)
	assert.True(t, resp.Blocked)

	// Второй - разблокирует
	resp, err = svc.ToggleDayBlock(context.Background(), 1, req)
	require.NoError(t, err)
	assert.False(t, resp.Blocked)

	// Третий - снова блокирует
	resp, err = svc.ToggleDayBlock(context.Background(), 1, req)
	require.NoError(t, err)
	assert.True(t, resp.Blocked)
}

func TestToggleDayBlock_ExplicitValue(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newTestService(repo, true)

	blocked := true
	resp, err := svc.ToggleDayBlock(context.Background(), 1, &models.ToggleDayBlockRequest{
		Date:    "2025-10-15",
		Blocked: &blocked,
	})
	require.NoError(t, err)
	assert.True(t, resp.Blocked)

	// Явное повторное значение не переключает, а выставляет
	resp, err = svc.ToggleDayBlock(context.Background(), 1, &models.ToggleDayBlockRequest{
		Date:    "2025-10-15",
		Blocked: &blocked,
	})
	require.NoError(t, err)
	assert.True(t, resp.Blocked)
}

func TestToggleDayBlock_Errors(t *testing.T) {
	t.Run("master not found", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo(), false)
		_, err := svc.ToggleDayBlock(context.Background(), 1, &models.ToggleDayBlockRequest{Date: "2025-10-15"})
		assert.ErrorIs(t, err, ErrMasterNotFound)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo(), true)
		_, err := svc.ToggleDayBlock(context.Background(), 1, &models.ToggleDayBlockRequest{Date: "15.10.2025"})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestToggleSlotBlock_Asymmetry(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newTestService(repo, true)

	req := &models.ToggleSlotBlockRequest{Date: "2025-10-15", StartTime: "12:00"}

	resp, err := svc.ToggleSlotBlock(context.Background(), 1, req)
	require.NoError(t, err)
	assert.True(t, resp.Blocked)

	resp, err = svc.ToggleSlotBlock(context.Background(), 1, req)
	require.NoError(t, err)
	assert.False(t, resp.Blocked)
}

func TestToggleSlotBlock_OutsideGrid(t *testing.T) {
	svc := newTestService(newFakeScheduleRepo(), true)

	// 12:30 не совпадает с часовой сеткой
	_, err := svc.ToggleSlotBlock(context.Background(), 1, &models.ToggleSlotBlockRequest{
		Date:      "2025-10-15",
		StartTime: "12:30",
	})
	assert.ErrorIs(t, err, ErrSlotOutsideGrid)

	// 22:00 - конец рабочего дня, слот с этим началом не существует
	_, err = svc.ToggleSlotBlock(context.Background(), 1, &models.ToggleSlotBlockRequest{
		Date:      "2025-10-15",
		StartTime: "22:00",
	})
	assert.ErrorIs(t, err, ErrSlotOutsideGrid)
}

func TestToggleSlotBlock_InvalidTime(t *testing.T) {
	svc := newTestService(newFakeScheduleRepo(), true)

	_, err := svc.ToggleSlotBlock(context.Background(), 1, &models.ToggleSlotBlockRequest{
		Date:      "2025-10-15",
		StartTime: "25:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

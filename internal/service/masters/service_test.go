package masters

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	storage "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/master"
	"github.com/m04kA/SMC-ScheduleService/internal/service/masters/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type fakeMasterRepo struct {
	masters map[int64]*domain.Master
	nextID  int64
	deleted []int64
}

func newFakeMasterRepo() *fakeMasterRepo {
	return &fakeMasterRepo{masters: map[int64]*domain.Master{}}
}

func (f *fakeMasterRepo) Create(_ context.Context, m *domain.Master) (*domain.Master, error) {
	f.nextID++
	m.ID = f.nextID
	f.masters[m.ID] = m
	return m, nil
}

func (f *fakeMasterRepo) GetByID(_ context.Context, id int64) (*domain.Master, error) {
	m, ok := f.masters[id]
	if !ok {
		return nil, storage.ErrMasterNotFound
	}
	return m, nil
}

func (f *fakeMasterRepo) List(_ context.Context) ([]*domain.Master, error) {
	result := make([]*domain.Master, 0, len(f.masters))
	for _, m := range f.masters {
		result = append(result, m)
	}
	return result, nil
}

func (f *fakeMasterRepo) Update(_ context.Context, id int64, update domain.MasterUpdate) error {
	m, ok := f.masters[id]
	if !ok {
		return storage.ErrMasterNotFound
	}
	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.Description != nil {
		m.Description = update.Description
	}
	if update.Photo != nil {
		m.Photo = update.Photo
	}
	return nil
}

func (f *fakeMasterRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.masters[id]; !ok {
		return storage.ErrMasterNotFound
	}
	delete(f.masters, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBookingRepo struct {
	activeCount int
}

func (f *fakeBookingRepo) CountActiveFromDate(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.activeCount, nil
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

func newTestService(repo *fakeMasterRepo, bookings *fakeBookingRepo) *Service {
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)
	return NewService(repo, bookings, &fixedTimeProvider{now: now}, noopLogger{})
}

func TestCreate(t *testing.T) {
	repo := newFakeMasterRepo()
	svc := newTestService(repo, &fakeBookingRepo{})

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Create(context.Background(), &models.CreateMasterRequest{
			Name:        "  Анна  ",
			Description: ptr.Ptr("маникюр, педикюр"),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Анна", resp.Name, "имя должно быть очищено от пробелов")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.Create(context.Background(), &models.CreateMasterRequest{Name: "   "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := svc.Create(context.Background(), &models.CreateMasterRequest{
			Name: strings.Repeat("a", domain.MaxMasterNameLength+1),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeMasterRepo(), &fakeBookingRepo{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMasterNotFound)
}

func TestUpdate(t *testing.T) {
	repo := newFakeMasterRepo()
	svc := newTestService(repo, &fakeBookingRepo{})

	created, err := svc.Create(context.Background(), &models.CreateMasterRequest{Name: "Анна"})
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		resp, err := svc.Update(context.Background(), created.ID, &models.UpdateMasterRequest{
			Description: ptr.Ptr("новое описание"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Анна", resp.Name)
		require.NotNil(t, resp.Description)
		assert.Equal(t, "новое описание", *resp.Description)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		_, err := svc.Update(context.Background(), created.ID, &models.UpdateMasterRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDelete_Policy(t *testing.T) {
	t.Run("blocked while active bookings exist", func(t *testing.T) {
		repo := newFakeMasterRepo()
		svc := newTestService(repo, &fakeBookingRepo{activeCount: 2})

		created, err := svc.Create(context.Background(), &models.CreateMasterRequest{Name: "Анна"})
		require.NoError(t, err)

		err = svc.Delete(context.Background(), created.ID)
		assert.ErrorIs(t, err, ErrHasActiveBookings)
		assert.Empty(t, repo.deleted)
	})

	t.Run("allowed without active bookings", func(t *testing.T) {
		repo := newFakeMasterRepo()
		svc := newTestService(repo, &fakeBookingRepo{activeCount: 0})

		created, err := svc.Create(context.Background(), &models.CreateMasterRequest{Name: "Анна"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), created.ID))
		assert.Equal(t, []int64{created.ID}, repo.deleted)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newFakeMasterRepo(), &fakeBookingRepo{})
		err := svc.Delete(context.Background(), 42)
		assert.ErrorIs(t, err, ErrMasterNotFound)
	})
}

package masters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	storage "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/master"
	"github.com/m04kA/SMC-ScheduleService/internal/service/masters/models"
)

// Service сервис управления мастерами
type Service struct {
	masterRepo  MasterRepository
	bookingRepo BookingRepository
	timeProv    TimeProvider
	logger      Logger
}

// NewService создает новый сервис мастеров
func NewService(masterRepo MasterRepository, bookingRepo BookingRepository, timeProv TimeProvider, logger Logger) *Service {
	return &Service{
		masterRepo:  masterRepo,
		bookingRepo: bookingRepo,
		timeProv:    timeProv,
		logger:      logger,
	}
}

// Create создает нового мастера
func (s *Service) Create(ctx context.Context, req *models.CreateMasterRequest) (*models.MasterResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: Create - master name is empty", ErrInvalidInput)
	}
	if len(name) > domain.MaxMasterNameLength {
		return nil, fmt.Errorf("%w: Create - master name longer than %d characters", ErrInvalidInput, domain.MaxMasterNameLength)
	}

	master := req.ToDomain()
	master.Name = name

	created, err := s.masterRepo.Create(ctx, master)
	if err != nil {
		s.logger.Error("Service.Masters: failed to create master %q: %v", name, err)
		return nil, fmt.Errorf("%w: Create - master %q: %v", ErrInternal, name, err)
	}

	s.logger.Info("Service.Masters: created master_id=%d name=%q", created.ID, created.Name)

	return models.FromDomainMaster(created), nil
}

// GetByID возвращает мастера по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.MasterResponse, error) {
	master, err := s.masterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrMasterNotFound) {
			return nil, fmt.Errorf("%w: GetByID - master_id: %d", ErrMasterNotFound, id)
		}
		s.logger.Error("Service.Masters: failed to get master_id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - master_id %d: %v", ErrInternal, id, err)
	}

	return models.FromDomainMaster(master), nil
}

// List возвращает всех мастеров
func (s *Service) List(ctx context.Context) (*models.MasterListResponse, error) {
	masters, err := s.masterRepo.List(ctx)
	if err != nil {
		s.logger.Error("Service.Masters: failed to list masters: %v", err)
		return nil, fmt.Errorf("%w: List - %v", ErrInternal, err)
	}

	return models.FromDomainMasterList(masters), nil
}

// Update частично обновляет профиль мастера
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateMasterRequest) (*models.MasterResponse, error) {
	update := req.ToDomain()
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: Update - no fields to update", ErrInvalidInput)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: Update - master name is empty", ErrInvalidInput)
		}
		if len(name) > domain.MaxMasterNameLength {
			return nil, fmt.Errorf("%w: Update - master name longer than %d characters", ErrInvalidInput, domain.MaxMasterNameLength)
		}
		update.Name = &name
	}

	if err := s.masterRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, storage.ErrMasterNotFound) {
			return nil, fmt.Errorf("%w: Update - master_id: %d", ErrMasterNotFound, id)
		}
		s.logger.Error("Service.Masters: failed to update master_id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - master_id %d: %v", ErrInternal, id, err)
	}

	return s.GetByID(ctx, id)
}

// Delete удаляет мастера
// Запрещено при наличии активных бронирований на сегодня и позже:
// клиенты с подтвержденной записью не должны терять ее молча
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.masterRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrMasterNotFound) {
			return fmt.Errorf("%w: Delete - master_id: %d", ErrMasterNotFound, id)
		}
		s.logger.Error("Service.Masters: failed to get master_id=%d for delete: %v", id, err)
		return fmt.Errorf("%w: Delete - master_id %d: %v", ErrInternal, id, err)
	}

	today := s.timeProv.Now().Truncate(24 * time.Hour)
	count, err := s.bookingRepo.CountActiveFromDate(ctx, id, today)
	if err != nil {
		s.logger.Error("Service.Masters: failed to count active bookings for master_id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - master_id %d: %v", ErrInternal, id, err)
	}

	if count > 0 {
		return fmt.Errorf("%w: Delete - master_id %d has %d active bookings", ErrHasActiveBookings, id, count)
	}

	if err := s.masterRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrMasterNotFound) {
			return fmt.Errorf("%w: Delete - master_id: %d", ErrMasterNotFound, id)
		}
		s.logger.Error("Service.Masters: failed to delete master_id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - master_id %d: %v", ErrInternal, id, err)
	}

	s.logger.Info("Service.Masters: deleted master_id=%d", id)

	return nil
}

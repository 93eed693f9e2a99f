package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	storage "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// Service сервис управления бронированиями
type Service struct {
	bookingRepo BookingRepository
	masterRepo  MasterRepository
	notifier    Notifier
	timeProv    TimeProvider
	logger      Logger
}

// NewService создает новый сервис бронирований
func NewService(bookingRepo BookingRepository, masterRepo MasterRepository, notifier Notifier, timeProv TimeProvider, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		masterRepo:  masterRepo,
		notifier:    notifier,
		timeProv:    timeProv,
		logger:      logger,
	}
}

// GetByID возвращает бронирование по ID
// Доступ: участники бронирования (клиент или мастер)
func (s *Service) GetByID(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: GetByID - booking_id: %d", ErrBookingNotFound, bookingID)
		}
		s.logger.Error("Service.Bookings: failed to get booking_id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByID - booking_id %d: %v", ErrInternal, bookingID, err)
	}

	if booking.UserID != userID && booking.MasterID != userID {
		return nil, fmt.Errorf("%w: GetByID - user_id %d is not a party of booking_id %d", ErrAccessDenied, userID, bookingID)
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings возвращает бронирования пользователя
// Опциональный фильтр по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	var status *domain.BookingStatus
	if req.Status != nil {
		st, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: GetUserBookings - status %q: %v", ErrInvalidInput, *req.Status, err)
		}
		status = &st
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("Service.Bookings: failed to list bookings for user_id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - user_id %d: %v", ErrInternal, req.UserID, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetMasterBookings возвращает историю бронирований мастера
// Доступ: только сам мастер
func (s *Service) GetMasterBookings(ctx context.Context, req *models.GetMasterBookingsRequest) (*models.BookingListResponse, error) {
	if req.UserID != req.MasterID {
		return nil, fmt.Errorf("%w: GetMasterBookings - user_id %d requested bookings of master_id %d", ErrAccessDenied, req.UserID, req.MasterID)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMasterBookings - %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("Service.Bookings: failed to list bookings for master_id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: GetMasterBookings - master_id %d: %v", ErrInternal, req.MasterID, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент отменяет свою запись, мастер - запись к себе; статус отражает
// инициатора отмены. Повторная отмена возвращает ErrAlreadyCancelled без
// изменения состояния и без повторного уведомления.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: Cancel - booking_id: %d", ErrBookingNotFound, bookingID)
		}
		s.logger.Error("Service.Bookings: failed to get booking_id=%d for cancel: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - booking_id %d: %v", ErrInternal, bookingID, err)
	}

	if booking.IsCancelled() {
		return nil, fmt.Errorf("%w: Cancel - booking_id %d has status %s", ErrAlreadyCancelled, bookingID, booking.Status)
	}

	var newStatus domain.BookingStatus
	var notifyUserID int64
	var notifyText string

	switch req.UserID {
	case booking.UserID:
		newStatus = domain.StatusCancelledByUser
		notifyUserID = booking.MasterID
		notifyText = fmt.Sprintf("Клиент отменил запись на %s в %s.",
			booking.BookingDate.Format(domain.DateFormat), booking.StartTime)
	case booking.MasterID:
		newStatus = domain.StatusCancelledByMaster
		notifyUserID = booking.UserID
		notifyText = fmt.Sprintf("Мастер отменил вашу запись на %s в %s.",
			booking.BookingDate.Format(domain.DateFormat), booking.StartTime)
	default:
		return nil, fmt.Errorf("%w: Cancel - user_id %d is not a party of booking_id %d", ErrAccessDenied, req.UserID, bookingID)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, newStatus, req.CancellationReason); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			// Кто-то отменил бронирование между чтением и обновлением
			return nil, fmt.Errorf("%w: Cancel - booking_id %d cancelled concurrently", ErrAlreadyCancelled, bookingID)
		}
		s.logger.Error("Service.Bookings: failed to cancel booking_id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - booking_id %d: %v", ErrInternal, bookingID, err)
	}

	s.logger.Info("Service.Bookings: booking_id=%d cancelled by user_id=%d, status=%s", bookingID, req.UserID, newStatus)

	// Уведомляем вторую сторону, доставка не влияет на результат отмены
	s.notifier.SendMessageBestEffort(ctx, notifyUserID, notifyText)

	cancelled, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Warn("Service.Bookings: failed to reload cancelled booking_id=%d: %v", bookingID, err)
		booking.Status = newStatus
		if req.CancellationReason != "" {
			booking.CancellationReason = &req.CancellationReason
		}
		return models.FromDomainBooking(booking), nil
	}

	return models.FromDomainBooking(cancelled), nil
}

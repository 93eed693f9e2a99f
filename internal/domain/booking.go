package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive            BookingStatus = "active"
	StatusCancelledByUser   BookingStatus = "cancelled_by_user"
	StatusCancelledByMaster BookingStatus = "cancelled_by_master"
)

// Booking represents a user's reservation of one slot with a master.
// Bookings are never physically deleted; cancellation is a terminal
// soft-status transition.
type Booking struct {
	ID              int64
	MasterID        int64
	UserID          int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByMaster
}

// EndTime returns the end of the occupied interval computed from
// the start time and duration
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// StartsAt returns the full timestamp of the booking start
func (b *Booking) StartsAt() (time.Time, error) {
	return b.StartTime.At(b.BookingDate)
}

// MasterBookingsFilter фильтр для получения бронирований мастера
type MasterBookingsFilter struct {
	MasterID        int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}

package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduler/reminders"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByMasterAndDate(ctx context.Context, masterID int64, date time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория переопределений расписания
type ScheduleRepository interface {
	GetDayOverride(ctx context.Context, masterID int64, date time.Time) (*domain.DayOverride, error)
	GetBlockedSlots(ctx context.Context, masterID int64, date time.Time) (map[types.TimeString]bool, error)
}

// MasterRepository интерфейс репозитория мастеров
type MasterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
}

// Notifier интерфейс отправки уведомлений (best effort)
type Notifier interface {
	SendMessageBestEffort(ctx context.Context, userID int64, text string)
}

// ReminderScheduler интерфейс постановки напоминаний в очередь
type ReminderScheduler interface {
	ScheduleBestEffort(ctx context.Context, fireAt time.Time, payload reminders.Payload)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
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

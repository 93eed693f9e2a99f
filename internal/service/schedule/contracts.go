package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ScheduleRepository интерфейс репозитория переопределений расписания
type ScheduleRepository interface {
	SetDayOverride(ctx context.Context, masterID int64, date time.Time, isBlocked bool) (*domain.DayOverride, error)
	ToggleDayOverride(ctx context.Context, masterID int64, date time.Time) (*domain.DayOverride, error)
	ToggleSlotOverride(ctx context.Context, masterID int64, date time.Time, startTime types.TimeString) (bool, error)
}

// MasterRepository интерфейс репозитория мастеров
type MasterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

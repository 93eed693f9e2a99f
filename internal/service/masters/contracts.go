package masters

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// MasterRepository интерфейс репозитория мастеров
type MasterRepository interface {
	Create(ctx context.Context, m *domain.Master) (*domain.Master, error)
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
	List(ctx context.Context) ([]*domain.Master, error)
	Update(ctx context.Context, id int64, update domain.MasterUpdate) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
// Нужен для проверки политики удаления мастера
type BookingRepository interface {
	CountActiveFromDate(ctx context.Context, masterID int64, fromDate time.Time) (int, error)
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

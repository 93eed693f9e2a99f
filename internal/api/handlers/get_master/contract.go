package get_master

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/masters/models"
)

type MasterService interface {
	GetByID(ctx context.Context, id int64) (*models.MasterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

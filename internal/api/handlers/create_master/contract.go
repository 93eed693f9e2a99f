package create_master

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/masters/models"
)

type MasterService interface {
	Create(ctx context.Context, req *models.CreateMasterRequest) (*models.MasterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

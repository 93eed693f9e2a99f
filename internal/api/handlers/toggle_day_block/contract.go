package toggle_day_block

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	ToggleDayBlock(ctx context.Context, masterID int64, req *models.ToggleDayBlockRequest) (*models.DayBlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

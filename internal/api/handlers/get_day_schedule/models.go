package get_day_schedule

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	MasterID   int64  `json:"masterId"`
	Date       string `json:"date"`
	DayBlocked bool   `json:"dayBlocked"`
	Slots      []Slot `json:"slots"`
}

// Slot модель слота дня
type Slot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Bookable        bool   `json:"bookable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = Slot{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			Status:          s.Status,
			Bookable:        s.Bookable,
		}
	}

	return &DayScheduleResponse{
		MasterID:   resp.MasterID,
		Date:       resp.Date.Format(domain.DateFormat),
		DayBlocked: resp.DayBlocked,
		Slots:      slots,
	}
}

package get_calendar

import (
	getCalendar "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	MasterID int64             `json:"masterId"`
	Month    string            `json:"month"`
	Days     []getCalendar.Day `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	return &CalendarResponse{
		MasterID: resp.MasterID,
		Month:    resp.Month,
		Days:     resp.Days,
	}
}

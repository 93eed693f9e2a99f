package models

import "github.com/m04kA/SMC-ScheduleService/internal/domain"

// Request модели

// ToggleDayBlockRequest запрос на переключение блокировки дня
// Blocked == nil - переключить текущее состояние,
// иначе - выставить указанное значение явно
type ToggleDayBlockRequest struct {
	Date    string `json:"date"` // "2025-10-15"
	Blocked *bool  `json:"blocked,omitempty"`
}

// ToggleSlotBlockRequest запрос на переключение блокировки слота
type ToggleSlotBlockRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
}

// Response модели

// DayBlockResponse результат переключения блокировки дня
type DayBlockResponse struct {
	MasterID int64  `json:"masterId"`
	Date     string `json:"date"`
	Blocked  bool   `json:"blocked"`
}

// SlotBlockResponse результат переключения блокировки слота
type SlotBlockResponse struct {
	MasterID  int64  `json:"masterId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Blocked   bool   `json:"blocked"`
}

// FromDomainDayOverride конвертирует domain модель в DTO
func FromDomainDayOverride(o *domain.DayOverride) *DayBlockResponse {
	if o == nil {
		return nil
	}

	return &DayBlockResponse{
		MasterID: o.MasterID,
		Date:     o.Date.Format(domain.DateFormat),
		Blocked:  o.IsBlocked,
	}
}

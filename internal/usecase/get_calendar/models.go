package get_calendar

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// Config настройки рабочей сетки
type Config struct {
	OpenTime            types.TimeString // Начало рабочего дня
	CloseTime           types.TimeString // Конец рабочего дня
	SlotDurationMinutes int              // Длительность слота в минутах
}

// Request модель запроса на получение календаря месяца
type Request struct {
	UserID   int64  // ID пользователя (для логирования, не влияет на результат)
	MasterID int64  // ID мастера
	Month    string // Месяц в формате YYYY-MM
}

// Response модель ответа с календарём месяца
type Response struct {
	MasterID int64  // ID мастера
	Month    string // Месяц в формате YYYY-MM
	Days     []Day  // Дни месяца с маркерами занятости
}

// Day маркер занятости одного дня
type Day struct {
	Date   string `json:"date"`   // "2025-10-15"
	Marker string `json:"marker"` // free, partial, full
}

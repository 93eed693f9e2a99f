package get_day_schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Config настройки рабочей сетки
type Config struct {
	OpenTime            types.TimeString // Начало рабочего дня
	CloseTime           types.TimeString // Конец рабочего дня
	SlotDurationMinutes int              // Длительность слота в минутах
}

// Request модель запроса на получение расписания дня
type Request struct {
	UserID   int64     // ID пользователя (для логирования, не влияет на результат)
	MasterID int64     // ID мастера
	Date     time.Time // Дата (без времени)
}

// Response модель ответа с расписанием дня мастера
type Response struct {
	MasterID   int64     // ID мастера
	Date       time.Time // Дата
	DayBlocked bool      // День заблокирован целиком
	Slots      []Slot    // Все слоты дня со статусами
}

// Slot модель слота дня
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	Status          string           // Статус: open, blocked_day, blocked_slot, taken, past
	Bookable        bool             // Можно ли бронировать
}

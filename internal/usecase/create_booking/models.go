package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Config настройки рабочей сетки и напоминаний
type Config struct {
	OpenTime            types.TimeString // Начало рабочего дня, например "10:00"
	CloseTime           types.TimeString // Конец рабочего дня, например "22:00"
	SlotDurationMinutes int              // Длительность слота в минутах
	ReminderHoursBefore int              // За сколько часов до начала напоминать
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя (Telegram ID)
	MasterID  int64            // ID мастера
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	UserID          int64            // ID пользователя
	MasterID        int64            // ID мастера
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

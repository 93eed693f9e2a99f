package reminders

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TypeBookingReminder тип задачи напоминания о записи
const TypeBookingReminder = "booking:reminder"

// Payload данные напоминания; всё, что нужно воркеру для текста сообщения,
// денормализовано в задачу - воркер не ходит в БД
type Payload struct {
	BookingID   int64  `json:"booking_id"`
	UserID      int64  `json:"user_id"`
	MasterName  string `json:"master_name"`
	BookingDate string `json:"booking_date"` // YYYY-MM-DD
	StartTime   string `json:"start_time"`   // HH:MM
}

// NewReminderTask создает одноразовую задачу напоминания с запуском в fireAt
// fireAt в прошлом допустим - asynq выполнит задачу немедленно
func NewReminderTask(payload Payload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(5),
	}

	return asynq.NewTask(TypeBookingReminder, b), opts, nil
}

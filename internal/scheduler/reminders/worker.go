package reminders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Notifier интерфейс доставки сообщений пользователю
type Notifier interface {
	SendMessage(ctx context.Context, userID int64, text string) error
}

// NewWorkerMux создает обработчик задач очереди напоминаний
// Ошибка доставки возвращается asynq - он повторит задачу по своей
// политике; состояние бронирования при этом не меняется
func NewWorkerMux(notifier Notifier, log Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, handleBookingReminder(notifier, log))
	return mux
}

func handleBookingReminder(notifier Notifier, log Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p Payload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Error("Reminders: invalid payload: %v", err)
			// Некорректную задачу нет смысла повторять
			return fmt.Errorf("%v: %v: %w", ErrInvalidPayload, err, asynq.SkipRetry)
		}

		text := fmt.Sprintf("Напоминание: завтра у вас запись к мастеру %s, %s в %s.",
			p.MasterName, p.BookingDate, p.StartTime)

		if err := notifier.SendMessage(ctx, p.UserID, text); err != nil {
			log.Warn("Reminders: delivery failed for booking_id=%d, will retry: %v", p.BookingID, err)
			return err
		}

		log.Info("Reminders: delivered reminder for booking_id=%d to user_id=%d", p.BookingID, p.UserID)
		return nil
	}
}

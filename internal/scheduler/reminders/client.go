package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client планировщик напоминаний поверх redis-очереди
// Гарантирует минимум одну попытку доставки в/после fireAt; политика
// повторов живёт в воркере, а не у вызывающего
type Client struct {
	client *asynq.Client
	log    Logger
}

// NewClient создает новый экземпляр планировщика напоминаний
func NewClient(redisAddr, redisPassword string, redisDB int, log Logger) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
		log: log,
	}
}

// Close закрывает соединение с redis
func (c *Client) Close() error {
	return c.client.Close()
}

// Schedule ставит одноразовое напоминание на fireAt
func (c *Client) Schedule(ctx context.Context, fireAt time.Time, payload Payload) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEnqueue, err)
	}

	info, err := c.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEnqueue, err)
	}

	c.log.Info("Reminders: scheduled task id=%s for booking_id=%d at %s",
		info.ID, payload.BookingID, fireAt.Format(time.RFC3339))
	return nil
}

// ScheduleBestEffort ставит напоминание, не пробрасывая ошибку наверх:
// сбой планировщика не должен откатывать уже закоммиченное бронирование
func (c *Client) ScheduleBestEffort(ctx context.Context, fireAt time.Time, payload Payload) {
	if err := c.Schedule(ctx, fireAt, payload); err != nil {
		c.log.Error("Reminders: failed to schedule reminder for booking_id=%d: %v", payload.BookingID, err)
	}
}

package reminders

import "errors"

var (
	// ErrEnqueue возвращается при ошибке постановки задачи в очередь
	ErrEnqueue = errors.New("reminders: failed to enqueue task")

	// ErrInvalidPayload возвращается воркером при некорректной задаче
	ErrInvalidPayload = errors.New("reminders: invalid task payload")
)

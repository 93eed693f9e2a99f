package notifyservice

import "errors"

var (
	// ErrUserUnreachable возвращается, когда шлюз не может доставить
	// сообщение пользователю (бот заблокирован, чат не найден)
	ErrUserUnreachable = errors.New("notifyservice client: user unreachable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")
)

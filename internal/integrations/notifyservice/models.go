package notifyservice

// SendMessageRequest запрос на отправку сообщения пользователю
type SendMessageRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

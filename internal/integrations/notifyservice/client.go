package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService - шлюзом, который доставляет
// сообщения пользователям в мессенджере
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendMessage отправляет текстовое сообщение пользователю
func (c *Client) SendMessage(ctx context.Context, userID int64, text string) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(SendMessageRequest{UserID: userID, Text: text})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	case http.StatusNotFound, http.StatusForbidden:
		return ErrUserUnreachable
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendMessageBestEffort отправляет сообщение, не пробрасывая ошибку доставки
// наверх: уведомления не должны влиять на результат бизнес-операции.
// Ошибка логируется, чтобы проблему с шлюзом было видно.
func (c *Client) SendMessageBestEffort(ctx context.Context, userID int64, text string) {
	if err := c.SendMessage(ctx, userID, text); err != nil {
		if err == ErrUserUnreachable {
			c.log.Warn("NotifyService: user_id=%d unreachable, message dropped", userID)
			return
		}
		c.log.Error("NotifyService: failed to send message to user_id=%d: %v", userID, err)
	}
}

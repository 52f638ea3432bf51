package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент уведомлений администратора через Telegram Bot API
// Отправка best-effort: вызывающая сторона не должна ронять операцию
// бронирования из-за ошибок уведомления
type Client struct {
	enabled    bool
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Telegram
// При enabled=false методы отправки ничего не делают
func NewClient(enabled bool, botToken, chatID, baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		enabled:  enabled,
		botToken: botToken,
		chatID:   chatID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendAppointmentCreated отправляет уведомление о новой записи
func (c *Client) SendAppointmentCreated(ctx context.Context, event *AppointmentCreatedEvent) error {
	email := "Не указан"
	if event.Email != nil && *event.Email != "" {
		email = *event.Email
	}

	message := "Нет дополнительной информации"
	if event.Message != nil && *event.Message != "" {
		message = *event.Message
	}

	text := fmt.Sprintf(`🎯 *Новая запись к логопеду*

👤 *Имя:* %s
📞 *Телефон:* %s
📧 *Email:* %s
📅 *Дата:* %s
⏰ *Время:* %s
💬 *Сообщение:* %s

🔑 *Код записи:* `+"`%s`"+`
🆔 *ID записи:* %s`,
		escapeMarkdownV2(event.Name),
		escapeMarkdownV2(event.Phone),
		escapeMarkdownV2(email),
		escapeMarkdownV2(formatDateRU(event.Date)),
		escapeMarkdownV2(event.Time.String()),
		escapeMarkdownV2(message),
		escapeMarkdownV2(event.BookingCode),
		escapeMarkdownV2(fmt.Sprintf("%d", event.ID)),
	)

	return c.sendMessage(ctx, text)
}

// SendAppointmentCancelled отправляет уведомление об отмене записи
func (c *Client) SendAppointmentCancelled(ctx context.Context, event *AppointmentCancelledEvent) error {
	text := fmt.Sprintf(`❌ *Отмена записи*

👤 *Имя:* %s
📞 *Телефон:* %s
📅 *Дата:* %s
⏰ *Время:* %s
🔑 *Код записи:* `+"`%s`"+`

⏰ *Время теперь свободно для других клиентов*`,
		escapeMarkdownV2(event.Name),
		escapeMarkdownV2(event.Phone),
		escapeMarkdownV2(formatDateRU(event.Date)),
		escapeMarkdownV2(event.Time.String()),
		escapeMarkdownV2(event.BookingCode),
	)

	return c.sendMessage(ctx, text)
}

// sendMessage отправляет сообщение в настроенный чат
func (c *Client) sendMessage(ctx context.Context, text string) error {
	if !c.enabled {
		c.log.Debug("Telegram notifications disabled, message skipped")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "MarkdownV2",
	})
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
		return fmt.Errorf("%w: failed to execute request: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrSendFailed, resp.StatusCode, string(raw))
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrSendFailed, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("%w: %s", ErrSendFailed, apiResp.Description)
	}

	return nil
}

// markdownV2Special символы, требующие экранирования в MarkdownV2
const markdownV2Special = "_*[]()~`>#+-=|{}.!\\"

// escapeMarkdownV2 экранирует специальные символы MarkdownV2
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownV2Special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ruMonths названия месяцев в родительном падеже для формата даты
var ruMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// formatDateRU форматирует дату как "2 января 2026"
func formatDateRU(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), ruMonths[t.Month()-1], t.Year())
}

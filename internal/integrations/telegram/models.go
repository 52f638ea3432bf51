package telegram

import (
	"time"

	"github.com/logoped-app/appointment-service/pkg/types"
)

// AppointmentCreatedEvent событие создания записи для уведомления
type AppointmentCreatedEvent struct {
	ID          int64
	Name        string
	Phone       string
	Email       *string
	Date        time.Time
	Time        types.TimeString
	Message     *string
	BookingCode string
}

// AppointmentCancelledEvent событие отмены записи для уведомления
type AppointmentCancelledEvent struct {
	Name        string
	Phone       string
	Date        time.Time
	Time        types.TimeString
	BookingCode string
}

// sendMessageRequest тело запроса Bot API sendMessage
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// apiResponse общий ответ Bot API
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

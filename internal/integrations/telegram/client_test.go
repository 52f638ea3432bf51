package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSendAppointmentCreated(t *testing.T) {
	var got sendMessageRequest
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer srv.Close()

	client := NewClient(true, "test-token", "42", srv.URL, 5*time.Second, nopLogger{})

	err := client.SendAppointmentCreated(context.Background(), &AppointmentCreatedEvent{
		ID:          7,
		Name:        "Иван Петров",
		Phone:       "+79161234567",
		Date:        time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
		BookingCode: "ABCDE",
	})
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "MarkdownV2", got.ParseMode)
	assert.Contains(t, got.Text, "Новая запись")
	assert.Contains(t, got.Text, "Иван Петров")
	assert.Contains(t, got.Text, "20 октября 2025")
	assert.Contains(t, got.Text, "ABCDE")
	// Телефон с плюсом экранирован для MarkdownV2
	assert.Contains(t, got.Text, `\+79161234567`)
}

func TestSendAppointmentCancelled(t *testing.T) {
	var got sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer srv.Close()

	client := NewClient(true, "token", "42", srv.URL, 5*time.Second, nopLogger{})

	err := client.SendAppointmentCancelled(context.Background(), &AppointmentCancelledEvent{
		Name:        "Мария",
		Phone:       "+79031112233",
		Date:        time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Time:        "14:30",
		BookingCode: "QWERT",
	})
	require.NoError(t, err)

	assert.Contains(t, got.Text, "Отмена записи")
	assert.Contains(t, got.Text, "2 января 2026")
	assert.Contains(t, got.Text, "QWERT")
}

func TestSendMessage_DisabledIsNoop(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := NewClient(false, "token", "42", srv.URL, 5*time.Second, nopLogger{})

	err := client.SendAppointmentCancelled(context.Background(), &AppointmentCancelledEvent{
		Date: time.Now(),
		Time: "10:00",
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(apiResponse{OK: false, Description: "chat not found"})
	}))
	defer srv.Close()

	client := NewClient(true, "token", "42", srv.URL, 5*time.Second, nopLogger{})

	err := client.SendAppointmentCancelled(context.Background(), &AppointmentCancelledEvent{
		Date: time.Now(),
		Time: "10:00",
	})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestSendMessage_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(true, "token", "42", srv.URL, 5*time.Second, nopLogger{})

	err := client.SendAppointmentCancelled(context.Background(), &AppointmentCancelledEvent{
		Date: time.Now(),
		Time: "10:00",
	})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "plain text", want: "plain text"},
		{input: "a.b", want: `a\.b`},
		{input: "+7 (916) 123-45-67", want: `\+7 \(916\) 123\-45\-67`},
		{input: "_*[]", want: `\_\*\[\]`},
		{input: "кириллица", want: "кириллица"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeMarkdownV2(tt.input))
	}
}

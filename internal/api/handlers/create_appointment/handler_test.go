package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logoped-app/appointment-service/internal/api/handlers"
	createAppointment "github.com/logoped-app/appointment-service/internal/usecase/create_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *createAppointment.Response
	err  error

	gotReq *createAppointment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

func doRequest(t *testing.T, uc CreateAppointmentUseCase, body string) (*httptest.ResponseRecorder, handlers.Response) {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	var envelope handlers.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return rec, envelope
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createAppointment.Response{
		ID:            1,
		BookingCode:   "ABCDE",
		Name:          "Иван Петров",
		Phone:         "+79161234567",
		PreferredDate: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		PreferredTime: "10:00",
		Status:        "active",
		CreatedAt:     time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC),
	}}

	rec, envelope := doRequest(t, uc, `{
		"name": "Иван Петров",
		"phone": "+79161234567",
		"preferredDate": "2025-10-20",
		"preferredTime": "10:00"
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, envelope.Success)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ABCDE", data["bookingCode"])
	assert.Equal(t, "2025-10-20", data["preferredDate"])
	assert.Equal(t, "10:00", data["preferredTime"])

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, "Иван Петров", uc.gotReq.Name)
}

func TestHandle_SlotConflict(t *testing.T) {
	uc := &fakeUseCase{err: createAppointment.ErrSlotNotAvailable}

	rec, envelope := doRequest(t, uc, `{
		"name": "Иван Петров",
		"phone": "+79161234567",
		"preferredDate": "2025-10-20",
		"preferredTime": "10:00"
	}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, envelope.Success)
	assert.Equal(t, msgSlotNotAvailable, envelope.Message)
}

func TestHandle_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "invalid name", err: createAppointment.ErrInvalidName, wantMsg: msgInvalidName},
		{name: "invalid phone", err: createAppointment.ErrInvalidPhone, wantMsg: msgInvalidPhone},
		{name: "too late", err: createAppointment.ErrTooLateToBook, wantMsg: msgTooLateToBook},
		{name: "date too far", err: createAppointment.ErrDateTooFarInFuture, wantMsg: msgDateTooFar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, envelope := doRequest(t, &fakeUseCase{err: tt.err}, `{
				"name": "Иван Петров",
				"phone": "+79161234567",
				"preferredDate": "2025-10-20",
				"preferredTime": "10:00"
			}`)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, envelope.Message)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	rec, envelope := doRequest(t, &fakeUseCase{}, `{broken`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidRequestBody, envelope.Message)
}

func TestHandle_InvalidDateFormat(t *testing.T) {
	rec, envelope := doRequest(t, &fakeUseCase{}, `{
		"name": "Иван Петров",
		"phone": "+79161234567",
		"preferredDate": "20.10.2025",
		"preferredTime": "10:00"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidDate, envelope.Message)
}

func TestHandle_InvalidTimeFormat(t *testing.T) {
	rec, envelope := doRequest(t, &fakeUseCase{}, `{
		"name": "Иван Петров",
		"phone": "+79161234567",
		"preferredDate": "2025-10-20",
		"preferredTime": "9:00"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidTime, envelope.Message)
}

func TestHandle_InternalError(t *testing.T) {
	rec, envelope := doRequest(t, &fakeUseCase{err: createAppointment.ErrCodeGenerationExhausted}, `{
		"name": "Иван Петров",
		"phone": "+79161234567",
		"preferredDate": "2025-10-20",
		"preferredTime": "10:00"
	}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, envelope.Success)
}

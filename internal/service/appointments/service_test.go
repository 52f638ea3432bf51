package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logoped-app/appointment-service/internal/domain"
	appointmentRepo "github.com/logoped-app/appointment-service/internal/infra/storage/appointment"
	"github.com/logoped-app/appointment-service/internal/integrations/telegram"
)

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, testLocation())

func testLocation() *time.Location {
	loc, err := time.LoadLocation(domain.DefaultTimezone)
	if err != nil {
		panic(err)
	}
	return loc
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	byCode map[string]*domain.Appointment
	stats  *domain.BookingStats

	cancelledIDs []int64
	gotCode      string
	statsFrom    time.Time
	statsTo      time.Time
}

func (f *fakeRepo) GetByCode(_ context.Context, code string) (*domain.Appointment, error) {
	f.gotCode = code
	if appt, ok := f.byCode[code]; ok {
		copied := *appt
		return &copied, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeRepo) GetActiveByCode(_ context.Context, code string) (*domain.Appointment, error) {
	f.gotCode = code
	if appt, ok := f.byCode[code]; ok && appt.Status == domain.StatusActive {
		copied := *appt
		return &copied, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, cancelledAt time.Time) error {
	for _, appt := range f.byCode {
		if appt.ID == id && appt.Status == domain.StatusActive {
			appt.Status = domain.StatusCancelled
			appt.CancelledAt = &cancelledAt
			f.cancelledIDs = append(f.cancelledIDs, id)
			return nil
		}
	}
	return appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeRepo) Stats(_ context.Context, from, to time.Time) (*domain.BookingStats, error) {
	f.statsFrom = from
	f.statsTo = to
	return f.stats, nil
}

type fakeNotifier struct {
	cancelled chan *telegram.AppointmentCancelledEvent
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{cancelled: make(chan *telegram.AppointmentCancelledEvent, 8)}
}

func (f *fakeNotifier) SendAppointmentCancelled(_ context.Context, event *telegram.AppointmentCancelledEvent) error {
	f.cancelled <- event
	return nil
}

func newTestService(repo *fakeRepo, notifier Notifier) *Service {
	svc := NewService(repo, notifier, testLocation(), nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc
}

func activeAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:            1,
		Name:          "Иван Петров",
		Phone:         "+79161234567",
		PreferredDate: time.Date(2025, 10, 20, 0, 0, 0, 0, testLocation()),
		PreferredTime: "10:00",
		BookingCode:   "ABCDE",
		Status:        domain.StatusActive,
		CreatedAt:     testNow.AddDate(0, 0, -1),
		UpdatedAt:     testNow.AddDate(0, 0, -1),
	}
}

func TestGetByCode(t *testing.T) {
	repo := &fakeRepo{byCode: map[string]*domain.Appointment{"ABCDE": activeAppointment()}}
	svc := newTestService(repo, newFakeNotifier())

	resp, err := svc.GetByCode(context.Background(), "ABCDE")
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "ABCDE", resp.BookingCode)
	assert.Equal(t, "2025-10-20", resp.PreferredDate)
	assert.Equal(t, "10:00", resp.PreferredTime)
	assert.Equal(t, "active", resp.Status)
}

func TestGetByCode_CaseInsensitive(t *testing.T) {
	repo := &fakeRepo{byCode: map[string]*domain.Appointment{"ABCDE": activeAppointment()}}
	svc := newTestService(repo, newFakeNotifier())

	resp, err := svc.GetByCode(context.Background(), "  abcde ")
	require.NoError(t, err)
	assert.Equal(t, "ABCDE", resp.BookingCode)
	assert.Equal(t, "ABCDE", repo.gotCode)
}

func TestGetByCode_CancelledAppointmentIsVisible(t *testing.T) {
	appt := activeAppointment()
	appt.Status = domain.StatusCancelled
	cancelledAt := testNow.AddDate(0, 0, -1)
	appt.CancelledAt = &cancelledAt

	repo := &fakeRepo{byCode: map[string]*domain.Appointment{"ABCDE": appt}}
	svc := newTestService(repo, newFakeNotifier())

	resp, err := svc.GetByCode(context.Background(), "ABCDE")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancelledAt)
}

func TestGetByCode_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newFakeNotifier())

	_, err := svc.GetByCode(context.Background(), "ZZZZZ")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByCode_EmptyCode(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newFakeNotifier())

	_, err := svc.GetByCode(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	repo := &fakeRepo{byCode: map[string]*domain.Appointment{"ABCDE": activeAppointment()}}
	notifier := newFakeNotifier()
	svc := newTestService(repo, notifier)

	resp, err := svc.Cancel(context.Background(), "abcde")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []int64{1}, repo.cancelledIDs)

	select {
	case event := <-notifier.cancelled:
		assert.Equal(t, "ABCDE", event.BookingCode)
	case <-time.After(time.Second):
		t.Fatal("cancellation notification was not sent")
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := &fakeRepo{byCode: map[string]*domain.Appointment{"ABCDE": activeAppointment()}}
	svc := newTestService(repo, newFakeNotifier())

	_, err := svc.Cancel(context.Background(), "ABCDE")
	require.NoError(t, err)

	// Повторная отмена: активной записи с таким кодом больше нет
	_, err = svc.Cancel(context.Background(), "ABCDE")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_AlreadyOccurred(t *testing.T) {
	appt := activeAppointment()
	appt.PreferredDate = time.Date(2025, 10, 15, 0, 0, 0, 0, testLocation())
	appt.PreferredTime = "10:00" // сейчас 12:00, запись уже прошла

	repo := &fakeRepo{byCode: map[string]*domain.Appointment{"ABCDE": appt}}
	svc := newTestService(repo, newFakeNotifier())

	_, err := svc.Cancel(context.Background(), "ABCDE")
	assert.ErrorIs(t, err, ErrAlreadyOccurred)
	assert.Empty(t, repo.cancelledIDs)
}

func TestStats(t *testing.T) {
	repo := &fakeRepo{stats: &domain.BookingStats{
		TotalAppointments:     10,
		ActiveAppointments:    7,
		CancelledAppointments: 3,
		UniqueClients:         8,
	}}
	svc := newTestService(repo, newFakeNotifier())

	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, resp.TotalAppointments)
	assert.Equal(t, 7, resp.ActiveAppointments)
	assert.Equal(t, 3, resp.CancelledAppointments)
	assert.Equal(t, 8, resp.UniqueClients)

	// Окно статистики — текущий календарный месяц
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, testLocation()), repo.statsFrom)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, testLocation()), repo.statsTo)
}

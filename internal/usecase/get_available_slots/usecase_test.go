package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logoped-app/appointment-service/internal/domain"
	"github.com/logoped-app/appointment-service/pkg/types"
)

var testNow = time.Date(2025, 10, 15, 14, 5, 0, 0, testLocation())

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
	active map[string][]types.TimeString
}

func (f *fakeRepo) ListActiveByDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, slot := range f.active[date.Format(domain.DateFormat)] {
		out = append(out, &domain.Appointment{
			PreferredDate: date,
			PreferredTime: slot,
			Status:        domain.StatusActive,
		})
	}
	return out, nil
}

func newTestUseCase(repo *fakeRepo) *UseCase {
	uc := NewUseCase(
		repo,
		domain.MustDefaultSlotCatalog(),
		domain.DefaultBookingPolicy(),
		testLocation(),
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_FutureDateAllSlotsFree(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, 10, 20, 0, 0, 0, 0, testLocation()),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 18)
	assert.Equal(t, 18, resp.TotalSlots)
	assert.Zero(t, resp.BookedSlots)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("17:30"), resp.Slots[17])
}

func TestExecute_TakenSlotsExcluded(t *testing.T) {
	date := time.Date(2025, 10, 20, 0, 0, 0, 0, testLocation())
	repo := &fakeRepo{active: map[string][]types.TimeString{
		"2025-10-20": {"10:00", "15:30"},
	}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 16)
	assert.Equal(t, 2, resp.BookedSlots)
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("15:30"))

	// Порядок каталога сохраняется
	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].IsBefore(resp.Slots[i]))
	}
}

func TestExecute_SameDayNoticeFilter(t *testing.T) {
	// Сейчас 14:05, запас 30 минут: граница 14:35.
	// 14:30 отсекается, 15:00 остается
	today := time.Date(2025, 10, 15, 0, 0, 0, 0, testLocation())
	uc := newTestUseCase(&fakeRepo{})

	resp, err := uc.Execute(context.Background(), &Request{Date: today})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, types.TimeString("14:30"))
	assert.Contains(t, resp.Slots, types.TimeString("15:00"))
	assert.Equal(t, types.TimeString("15:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("17:30"), resp.Slots[len(resp.Slots)-1])
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, 10, 14, 0, 0, 0, 0, testLocation()),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Zero(t, resp.BookedSlots)
}

func TestExecute_SlotRestoredAfterCancellation(t *testing.T) {
	// Отмененная запись не держит слот: репозиторий выдает только активные
	date := time.Date(2025, 10, 20, 0, 0, 0, 0, testLocation())
	repo := &fakeRepo{active: map[string][]types.TimeString{
		"2025-10-20": {"10:00"},
	}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))

	// Отмена
	repo.active = map[string][]types.TimeString{}

	resp, err = uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.Contains(t, resp.Slots, types.TimeString("10:00"))
}

func TestExecute_MissingDate(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

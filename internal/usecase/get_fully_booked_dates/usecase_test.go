package get_fully_booked_dates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logoped-app/appointment-service/internal/domain"
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
	counts []domain.DateBookingCount
	err    error

	gotFrom time.Time
	gotTo   time.Time
}

func (f *fakeRepo) CountActiveByDateRange(_ context.Context, from, to time.Time) ([]domain.DateBookingCount, error) {
	f.gotFrom = from
	f.gotTo = to
	return f.counts, f.err
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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, testLocation())
}

func TestExecute_OnlyFullyBookedDatesIncluded(t *testing.T) {
	repo := &fakeRepo{counts: []domain.DateBookingCount{
		{Date: date(2025, 10, 20), Count: 18},
		{Date: date(2025, 10, 21), Count: 17},
		{Date: date(2025, 10, 16), Count: 18},
		{Date: date(2025, 10, 22), Count: 1},
	}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// Даты с занятостью меньше полного каталога не попадают в ответ,
	// результат отсортирован по возрастанию
	assert.Equal(t, []string{"2025-10-16", "2025-10-20"}, resp.Dates)
}

func TestExecute_HorizonBounds(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, date(2025, 10, 15), repo.gotFrom)
	assert.Equal(t, date(2026, 4, 15), repo.gotTo)
}

func TestExecute_EmptyResult(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Dates)
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{err: errors.New("connection refused")})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

package get_fully_booked_dates

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/logoped-app/appointment-service/internal/domain"
)

// UseCase use case получения полностью занятых дат в горизонте бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalog         domain.SlotCatalog
	policy          domain.BookingPolicy
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalog domain.SlotCatalog,
	policy domain.BookingPolicy,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		policy:          policy,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute возвращает даты горизонта [сегодня, сегодня + AdvanceMonths],
// на которых занят каждый слот каталога
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now().In(uc.location)
	y, m, d := now.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	to := from.AddDate(0, uc.policy.AdvanceMonths, 0)

	counts, err := uc.appointmentRepo.CountActiveByDateRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetFullyBookedDates: failed to count active appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to count active appointments: %v", ErrInternal, err)
	}

	capacity := uc.catalog.Size()
	dates := make([]string, 0, len(counts))
	for _, c := range counts {
		if c.Count >= capacity {
			dates = append(dates, c.Date.Format(domain.DateFormat))
		}
	}
	sort.Strings(dates)

	uc.logger.Info("GetFullyBookedDates: horizon=[%s, %s], fully booked=%d",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat), len(dates))

	return &Response{Dates: dates}, nil
}

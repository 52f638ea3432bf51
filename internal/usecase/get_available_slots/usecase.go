package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/logoped-app/appointment-service/internal/domain"
	"github.com/logoped-app/appointment-service/pkg/types"
)

// UseCase use case получения доступных слотов на дату
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

// Execute выполняет use case получения доступных слотов.
// Для прошедшей даты возвращается пустой список, а не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	now := uc.timeProvider.Now().In(uc.location)
	if isDateInPast(req.Date, now) {
		return &Response{
			Date:        req.Date,
			Slots:       []types.TimeString{},
			TotalSlots:  uc.catalog.Size(),
			BookedSlots: 0,
		}, nil
	}

	appointments, err := uc.appointmentRepo.ListActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list active appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list active appointments: %v", ErrInternal, err)
	}

	taken := make([]types.TimeString, 0, len(appointments))
	for _, appt := range appointments {
		taken = append(taken, appt.PreferredTime)
	}

	slots := availableSlots(uc.catalog, taken, uc.policy, req.Date, now)

	uc.logger.Info("GetAvailableSlots: date=%s, available=%d, booked=%d",
		req.Date.Format(domain.DateFormat), len(slots), len(taken))

	return &Response{
		Date:        req.Date,
		Slots:       slots,
		TotalSlots:  uc.catalog.Size(),
		BookedSlots: len(taken),
	}, nil
}

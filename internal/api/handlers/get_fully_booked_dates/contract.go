package get_fully_booked_dates

import (
	"context"

	getFullyBookedDates "github.com/logoped-app/appointment-service/internal/usecase/get_fully_booked_dates"
)

type GetFullyBookedDatesUseCase interface {
	Execute(ctx context.Context) (*getFullyBookedDates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_fully_booked_dates

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_fully_booked_dates: internal error")
)

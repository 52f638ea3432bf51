package get_fully_booked_dates

import (
	getFullyBookedDates "github.com/logoped-app/appointment-service/internal/usecase/get_fully_booked_dates"
)

// FullyBookedDatesResponse HTTP response model
type FullyBookedDatesResponse struct {
	Dates []string `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFullyBookedDates.Response) *FullyBookedDatesResponse {
	dates := resp.Dates
	if dates == nil {
		dates = []string{}
	}
	return &FullyBookedDatesResponse{Dates: dates}
}

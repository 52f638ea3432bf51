package get_available_slots

import (
	"time"

	"github.com/logoped-app/appointment-service/internal/domain"
	getAvailableSlots "github.com/logoped-app/appointment-service/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date        string   `json:"date"`
	Slots       []string `json:"slots"`
	TotalSlots  int      `json:"totalSlots"`
	BookedSlots int      `json:"bookedSlots"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &SlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		Slots:       slots,
		TotalSlots:  resp.TotalSlots,
		BookedSlots: resp.BookedSlots,
	}
}

package create_appointment

import (
	"time"

	"github.com/logoped-app/appointment-service/internal/domain"
	createAppointment "github.com/logoped-app/appointment-service/internal/usecase/create_appointment"
	"github.com/logoped-app/appointment-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email,omitempty"`
	PreferredDate string  `json:"preferredDate"` // "2025-10-15"
	PreferredTime string  `json:"preferredTime"` // "10:00"
	Message       *string `json:"message,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	BookingCode   string  `json:"bookingCode"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email,omitempty"`
	PreferredDate string  `json:"preferredDate"`
	PreferredTime string  `json:"preferredTime"`
	Message       *string `json:"message,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	preferredDate, err := time.Parse(domain.DateFormat, r.PreferredDate)
	if err != nil {
		return nil, err
	}

	preferredTime, err := types.NewTimeStringFromString(r.PreferredTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Name:          r.Name,
		Phone:         r.Phone,
		Email:         r.Email,
		PreferredDate: preferredDate,
		PreferredTime: preferredTime,
		Message:       r.Message,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		BookingCode:   resp.BookingCode,
		Name:          resp.Name,
		Phone:         resp.Phone,
		Email:         resp.Email,
		PreferredDate: resp.PreferredDate.Format(domain.DateFormat),
		PreferredTime: resp.PreferredTime.String(),
		Message:       resp.Message,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}

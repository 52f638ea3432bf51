package models

import (
	"time"

	"github.com/logoped-app/appointment-service/internal/domain"
)

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email,omitempty"`
	PreferredDate string  `json:"preferredDate"` // "2025-10-15"
	PreferredTime string  `json:"preferredTime"` // "10:00"
	Message       *string `json:"message,omitempty"`
	BookingCode   string  `json:"bookingCode"`
	Status        string  `json:"status"`
	CancelledAt   *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatsResponse ответ со статистикой бронирований за период
type StatsResponse struct {
	TotalAppointments     int `json:"totalAppointments"`
	ActiveAppointments    int `json:"activeAppointments"`
	CancelledAppointments int `json:"cancelledAppointments"`
	UniqueClients         int `json:"uniqueClients"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:            a.ID,
		Name:          a.Name,
		Phone:         a.Phone,
		Email:         a.Email,
		PreferredDate: a.PreferredDate.Format(domain.DateFormat),
		PreferredTime: a.PreferredTime.String(),
		Message:       a.Message,
		BookingCode:   a.BookingCode,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainStats конвертирует domain статистику в DTO
func FromDomainStats(s *domain.BookingStats) *StatsResponse {
	if s == nil {
		return nil
	}

	return &StatsResponse{
		TotalAppointments:     s.TotalAppointments,
		ActiveAppointments:    s.ActiveAppointments,
		CancelledAppointments: s.CancelledAppointments,
		UniqueClients:         s.UniqueClients,
	}
}

package domain

import (
	"time"

	"github.com/logoped-app/appointment-service/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusActive    AppointmentStatus = "active"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a client appointment in the system
// Cancelled appointments are retained for history, never deleted
type Appointment struct {
	ID            int64
	Name          string
	Phone         string
	Email         *string
	PreferredDate time.Time
	PreferredTime types.TimeString
	Message       *string

	// BookingCode is the client-facing identity token: 5 uppercase letters,
	// unique across all records regardless of status, immutable once assigned
	BookingCode string

	Status      AppointmentStatus
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment has not been cancelled
func (a *Appointment) IsActive() bool {
	return a.Status == StatusActive
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// ScheduledAt returns the full scheduled instant combining the preferred
// date and time in the given location
func (a *Appointment) ScheduledAt(loc *time.Location) time.Time {
	minutes, err := a.PreferredTime.Minutes()
	if err != nil {
		minutes = 0
	}
	y, m, d := a.PreferredDate.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
}

// HasOccurred returns true if the scheduled instant is not in the future
func (a *Appointment) HasOccurred(now time.Time, loc *time.Location) bool {
	return !a.ScheduledAt(loc).After(now)
}

// CanBeCancelled returns true if the appointment is active and its
// scheduled instant is still in the future
func (a *Appointment) CanBeCancelled(now time.Time, loc *time.Location) bool {
	return a.IsActive() && !a.HasOccurred(now, loc)
}

// DateBookingCount holds the number of active appointments on a calendar date
type DateBookingCount struct {
	Date  time.Time
	Count int
}

// BookingStats aggregated appointment statistics for a period
type BookingStats struct {
	TotalAppointments     int
	ActiveAppointments    int
	CancelledAppointments int
	UniqueClients         int
}

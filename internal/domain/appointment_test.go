package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment_ScheduledAt(t *testing.T) {
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)

	appt := &Appointment{
		PreferredDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		PreferredTime: "14:30",
	}

	scheduled := appt.ScheduledAt(loc)
	assert.Equal(t, time.Date(2025, 10, 15, 14, 30, 0, 0, loc), scheduled)
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	loc := time.UTC
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status AppointmentStatus
		now    time.Time
		want   bool
	}{
		{
			name:   "active future appointment",
			status: StatusActive,
			now:    time.Date(2025, 10, 15, 9, 59, 0, 0, loc),
			want:   true,
		},
		{
			name:   "active appointment at exact start",
			status: StatusActive,
			now:    time.Date(2025, 10, 15, 10, 0, 0, 0, loc),
			want:   false,
		},
		{
			name:   "active past appointment",
			status: StatusActive,
			now:    time.Date(2025, 10, 16, 0, 0, 0, 0, loc),
			want:   false,
		},
		{
			name:   "cancelled appointment",
			status: StatusCancelled,
			now:    time.Date(2025, 10, 14, 0, 0, 0, 0, loc),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := &Appointment{
				PreferredDate: date,
				PreferredTime: "10:00",
				Status:        tt.status,
			}
			assert.Equal(t, tt.want, appt.CanBeCancelled(tt.now, loc))
		})
	}
}

func TestAppointment_StatusPredicates(t *testing.T) {
	active := &Appointment{Status: StatusActive}
	assert.True(t, active.IsActive())
	assert.False(t, active.IsCancelled())

	cancelled := &Appointment{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
	assert.True(t, cancelled.IsCancelled())
}

package appointments

import (
	"context"
	"time"

	"github.com/logoped-app/appointment-service/internal/domain"
	"github.com/logoped-app/appointment-service/internal/integrations/telegram"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Appointment, error)
	GetActiveByCode(ctx context.Context, code string) (*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, cancelledAt time.Time) error
	Stats(ctx context.Context, from, to time.Time) (*domain.BookingStats, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	SendAppointmentCancelled(ctx context.Context, event *telegram.AppointmentCancelledEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package create_appointment

import (
	"context"
	"time"

	"github.com/logoped-app/appointment-service/internal/domain"
	"github.com/logoped-app/appointment-service/internal/integrations/telegram"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс уведомлений о созданных записях
// Отправка best-effort: ошибка уведомления не влияет на результат бронирования
type Notifier interface {
	SendAppointmentCreated(ctx context.Context, event *telegram.AppointmentCreatedEvent) error
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

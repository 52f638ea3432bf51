package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/logoped-app/appointment-service/internal/domain"
	appointmentRepo "github.com/logoped-app/appointment-service/internal/infra/storage/appointment"
	"github.com/logoped-app/appointment-service/internal/integrations/telegram"
	"github.com/logoped-app/appointment-service/internal/service/appointments/models"
)

// notifyTimeout таймаут фонового уведомления
const notifyTimeout = 10 * time.Second

// Service сервис для работы с существующими записями:
// поиск по коду, отмена, статистика
type Service struct {
	appointmentRepo AppointmentRepository
	notifier        Notifier
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByCode получает запись по коду бронирования независимо от статуса.
// Код нечувствителен к регистру
func (s *Service) GetByCode(ctx context.Context, code string) (*models.AppointmentResponse, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByCode: fetching appointment code=%s", code)

	appt, err := s.appointmentRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByCode: appointment code=%s not found", code)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет активную запись по коду бронирования.
// Запись остается в БД со статусом cancelled, слот освобождается.
// Отмена уже отмененной записи возвращает ErrAppointmentNotFound,
// отмена прошедшей записи - ErrAlreadyOccurred
func (s *Service) Cancel(ctx context.Context, code string) (*models.AppointmentResponse, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: cancelling appointment code=%s", code)

	appt, err := s.appointmentRepo.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: active appointment code=%s not found", code)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now().In(s.location)
	if !appt.CanBeCancelled(now, s.location) {
		s.logger.Warn("Cancel: appointment id=%d already occurred at %s %s",
			appt.ID, appt.PreferredDate.Format("2006-01-02"), appt.PreferredTime)
		return nil, ErrAlreadyOccurred
	}

	if err := s.appointmentRepo.Cancel(ctx, appt.ID, now); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			// Конкурирующая отмена успела первой
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appt.ID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d, code=%s", appt.ID, code)

	appt.Status = domain.StatusCancelled
	appt.CancelledAt = &now
	appt.UpdatedAt = now

	s.notifyCancelled(appt)

	return models.FromDomainAppointment(appt), nil
}

// Stats возвращает статистику бронирований за текущий календарный месяц
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	now := s.timeProvider.Now().In(s.location)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 1, 0)

	s.logger.Info("Stats: fetching booking stats for period [%s, %s)",
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	stats, err := s.appointmentRepo.Stats(ctx, from, to)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}

// notifyCancelled отправляет уведомление об отмене записи в фоне
func (s *Service) notifyCancelled(appt *domain.Appointment) {
	event := &telegram.AppointmentCancelledEvent{
		Name:        appt.Name,
		Phone:       appt.Phone,
		Date:        appt.PreferredDate,
		Time:        appt.PreferredTime,
		BookingCode: appt.BookingCode,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.SendAppointmentCancelled(ctx, event); err != nil {
			s.logger.Warn("Cancel: notification failed for code=%s: %v", appt.BookingCode, err)
		}
	}()
}

// normalizeCode приводит код бронирования к верхнему регистру
func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("%w: booking code is required", ErrInvalidInput)
	}
	return code, nil
}

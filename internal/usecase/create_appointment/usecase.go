package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/logoped-app/appointment-service/internal/domain"
	appointmentRepo "github.com/logoped-app/appointment-service/internal/infra/storage/appointment"
	"github.com/logoped-app/appointment-service/internal/integrations/telegram"
)

// maxCreateAttempts количество повторов записи при проигрыше гонки за код
// (нарушение уникальности booking_code при вставке)
const maxCreateAttempts = 3

// notifyTimeout таймаут фонового уведомления
const notifyTimeout = 10 * time.Second

// UseCase use case создания записи на консультацию
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	catalog         domain.SlotCatalog
	policy          domain.BookingPolicy
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	catalog domain.SlotCatalog,
	policy domain.BookingPolicy,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		catalog:         catalog,
		policy:          policy,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка свободности слота и вставка выполняются в сериализуемой транзакции;
// двойное бронирование дополнительно исключается уникальными индексами БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: name=%q, date=%s, time=%s",
		req.Name, req.PreferredDate.Format(domain.DateFormat), req.PreferredTime)

	// 1. Нормализация и валидация входных данных
	normalizeRequest(req)

	now := uc.timeProvider.Now().In(uc.location)
	if err := validateRequest(req, uc.catalog, uc.policy, now, uc.location); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Создание записи с повторами на случай проигрыша гонки за код.
	// Повтор возможен только по ErrDuplicateCode: транзакция после
	// нарушения ограничения прервана, поэтому каждый повтор — новая транзакция
	var result *domain.Appointment
	var err error

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		result, err = uc.tryCreate(ctx, req)
		if err == nil {
			break
		}
		if errors.Is(err, appointmentRepo.ErrDuplicateCode) {
			uc.logger.Warn("CreateAppointment: booking code collision on insert, attempt %d/%d",
				attempt, maxCreateAttempts)
			continue
		}
		break
	}

	if err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateCode) {
			uc.logger.Error("CreateAppointment: code collisions exhausted %d attempts", maxCreateAttempts)
			return nil, ErrCodeGenerationExhausted
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, code=%s",
		result.ID, result.BookingCode)

	// 3. Фоновое уведомление; ошибки логируются и не влияют на результат
	uc.notifyCreated(result)

	return &Response{
		ID:            result.ID,
		BookingCode:   result.BookingCode,
		Name:          result.Name,
		Phone:         result.Phone,
		Email:         result.Email,
		PreferredDate: result.PreferredDate,
		PreferredTime: result.PreferredTime,
		Message:       result.Message,
		Status:        string(result.Status),
		CreatedAt:     result.CreatedAt,
	}, nil
}

// tryCreate одна попытка создать запись в сериализуемой транзакции
func (uc *UseCase) tryCreate(ctx context.Context, req *Request) (*domain.Appointment, error) {
	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Повторная серверная проверка свободности слота с блокировкой
		// FOR UPDATE — клиентскому списку доступных слотов не доверяем
		taken, err := uc.appointmentRepo.ListActiveByDate(txCtx, req.PreferredDate)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list active appointments: %v", err)
			return fmt.Errorf("%w: failed to list active appointments: %v", ErrInternal, err)
		}

		for _, appt := range taken {
			if appt.PreferredTime == req.PreferredTime {
				uc.logger.Warn("CreateAppointment: slot %s %s already taken by appointment id=%d",
					req.PreferredDate.Format(domain.DateFormat), req.PreferredTime, appt.ID)
				return ErrSlotNotAvailable
			}
		}

		code, err := uc.generateUniqueCode(txCtx)
		if err != nil {
			uc.logger.Error("CreateAppointment: code generation failed: %v", err)
			return err
		}

		appt := &domain.Appointment{
			Name:          req.Name,
			Phone:         req.Phone,
			Email:         req.Email,
			PreferredDate: req.PreferredDate,
			PreferredTime: req.PreferredTime,
			Message:       req.Message,
			BookingCode:   code,
			Status:        domain.StatusActive,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotTaken):
				// Конкурирующее бронирование успело занять слот между
				// проверкой и вставкой — ограничение БД сообщило о конфликте
				uc.logger.Warn("CreateAppointment: lost slot race on insert: %s %s",
					req.PreferredDate.Format(domain.DateFormat), req.PreferredTime)
				return ErrSlotNotAvailable
			case errors.Is(err, appointmentRepo.ErrDuplicateCode):
				return err
			default:
				uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// notifyCreated отправляет уведомление о созданной записи в фоне
func (uc *UseCase) notifyCreated(appt *domain.Appointment) {
	event := &telegram.AppointmentCreatedEvent{
		ID:          appt.ID,
		Name:        appt.Name,
		Phone:       appt.Phone,
		Email:       appt.Email,
		Date:        appt.PreferredDate,
		Time:        appt.PreferredTime,
		Message:     appt.Message,
		BookingCode: appt.BookingCode,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifier.SendAppointmentCreated(ctx, event); err != nil {
			uc.logger.Warn("CreateAppointment: notification failed for appointment id=%d: %v",
				appt.ID, err)
		}
	}()
}

package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/logoped-app/appointment-service/internal/domain"
	"github.com/logoped-app/appointment-service/pkg/dbmetrics"
	"github.com/logoped-app/appointment-service/pkg/psqlbuilder"
)

// Имена уникальных ограничений таблицы appointments (см. migrations)
const (
	constraintBookingCode = "uq_appointments_booking_code"
	constraintActiveSlot  = "uq_appointments_active_slot"
)

const uniqueViolation = "23505"

var appointmentColumns = []string{
	"id",
	"name",
	"phone",
	"email",
	"preferred_date",
	"preferred_time",
	"message",
	"booking_code",
	"status",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на консультацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Финальная гарантия отсутствия двойного бронирования — уникальные индексы
// на booking_code и на (preferred_date, preferred_time) среди активных записей.
// Нарушение ограничения конвертируется в ErrDuplicateCode / ErrSlotTaken,
// чтобы usecase мог повторить запись или отдать конфликт пользователю.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"name",
			"phone",
			"email",
			"preferred_date",
			"preferred_time",
			"message",
			"booking_code",
			"status",
		).
		Values(
			appt.Name,
			appt.Phone,
			appt.Email,
			appt.PreferredDate,
			appt.PreferredTime,
			appt.Message,
			appt.BookingCode,
			appt.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if constraintErr := mapUniqueViolation(err); constraintErr != nil {
			return nil, constraintErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByCode получает запись по коду независимо от статуса
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"booking_code": code})
}

// GetActiveByCode получает активную запись по коду
// Отмененная запись с таким кодом считается не найденной
func (r *Repository) GetActiveByCode(ctx context.Context, code string) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{
		"booking_code": code,
		"status":       domain.StatusActive,
	})
}

// ExistsByCode проверяет существование записи с данным кодом (любой статус)
// Используется генератором кодов как оптимизация перед вставкой
func (r *Repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{"booking_code": code}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByCode - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByCode - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListActiveByDate получает все активные записи на календарную дату,
// отсортированные по времени начала.
// Внутри транзакции добавляет FOR UPDATE — блокировка занятых слотов
// на время проверки доступности при создании записи
func (r *Repository) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"preferred_date": dateOnly(date),
			"status":         domain.StatusActive,
		}).
		OrderBy("preferred_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// CountActiveByDateRange считает активные записи по датам в диапазоне [from, to]
// Возвращает только даты, на которые есть хотя бы одна активная запись
func (r *Repository) CountActiveByDateRange(ctx context.Context, from, to time.Time) ([]domain.DateBookingCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("preferred_date", "COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.GtOrEq{"preferred_date": dateOnly(from)}).
		Where(squirrel.LtOrEq{"preferred_date": dateOnly(to)}).
		GroupBy("preferred_date").
		OrderBy("preferred_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.DateBookingCount, 0)
	for rows.Next() {
		var c domain.DateBookingCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByDateRange - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDateRange - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// Cancel помечает активную запись отмененной (soft-cancel, запись сохраняется)
// Условие status = active делает операцию идемпотентно-безопасной:
// повторная отмена вернет ErrAppointmentNotFound
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": domain.StatusActive,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Stats собирает статистику записей, созданных в периоде [from, to)
func (r *Repository) Stats(ctx context.Context, from, to time.Time) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.StatusActive),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.StatusCancelled),
		"COUNT(DISTINCT phone)",
	).
		From("appointments").
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalAppointments,
		&stats.ActiveAppointments,
		&stats.CancelledAppointments,
		&stats.UniqueClients,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// getOne выполняет выборку одной записи по условию
func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&appt.Name,
		&appt.Phone,
		&appt.Email,
		&appt.PreferredDate,
		&appt.PreferredTime,
		&appt.Message,
		&appt.BookingCode,
		&appt.Status,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan appointment: %v", ErrScanRow, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.Name,
			&appt.Phone,
			&appt.Email,
			&appt.PreferredDate,
			&appt.PreferredTime,
			&appt.Message,
			&appt.BookingCode,
			&appt.Status,
			&appt.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// mapUniqueViolation конвертирует нарушение уникального ограничения PostgreSQL
// в доменную ошибку репозитория; для прочих ошибок возвращает nil
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case constraintBookingCode:
		return ErrDuplicateCode
	case constraintActiveSlot:
		return ErrSlotTaken
	default:
		// Имя ограничения может отсутствовать (например, при проксировании);
		// различаем по тексту сообщения
		if strings.Contains(pqErr.Error(), constraintBookingCode) {
			return ErrDuplicateCode
		}
		if strings.Contains(pqErr.Error(), constraintActiveSlot) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: unique violation: %v", ErrExecQuery, err)
	}
}

// dateOnly обнуляет компонент времени даты
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

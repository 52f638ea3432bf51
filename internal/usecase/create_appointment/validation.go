package create_appointment

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/logoped-app/appointment-service/internal/domain"
	"github.com/logoped-app/appointment-service/pkg/types"
)

var (
	// phonePattern общий международный формат: опциональный +, 2-15 цифр без ведущего нуля
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
)

// normalizeRequest приводит поля запроса к каноническому виду:
// телефон — только цифры и ведущий плюс, email — нижний регистр
func normalizeRequest(req *Request) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = normalizePhone(req.Phone)

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			req.Email = nil
		} else {
			req.Email = &email
		}
	}

	if req.Message != nil {
		message := strings.TrimSpace(*req.Message)
		if message == "" {
			req.Message = nil
		} else {
			req.Message = &message
		}
	}
}

// normalizePhone удаляет пробелы, скобки и дефисы, сохраняя ведущий плюс
func normalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validateRequest валидирует запрос на создание записи
// Слой форм на клиенте уже проверяет эти же ограничения, но usecase
// перепроверяет их на своей стороне перед обращением к БД
func validateRequest(req *Request, catalog domain.SlotCatalog, policy domain.BookingPolicy, now time.Time, loc *time.Location) error {
	nameLen := utf8.RuneCountInString(req.Name)
	if nameLen < domain.MinNameLength || nameLen > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be %d-%d characters", ErrInvalidName, domain.MinNameLength, domain.MaxNameLength)
	}

	if !phonePattern.MatchString(req.Phone) {
		return ErrInvalidPhone
	}

	if req.Email != nil && !emailPattern.MatchString(*req.Email) {
		return ErrInvalidEmail
	}

	if req.Message != nil && utf8.RuneCountInString(*req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message must be at most %d characters", ErrMessageTooLong, domain.MaxMessageLength)
	}

	if req.PreferredDate.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.PreferredTime.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if !catalog.Contains(req.PreferredTime) {
		return ErrInvalidTimeSlot
	}

	return validateSlotInstant(req.PreferredDate, req.PreferredTime, policy, now, loc)
}

// validateSlotInstant проверяет временные ограничения бронируемого слота:
// момент записи строго в будущем с минимальным запасом и в пределах горизонта
func validateSlotInstant(date time.Time, slot types.TimeString, policy domain.BookingPolicy, now time.Time, loc *time.Location) error {
	// Дата из запроса распарсена в UTC, поэтому сравнивается как календарный
	// день в бизнес-зоне, а не как момент времени
	day := calendarDay(date, loc)
	today := calendarDay(now, loc)

	if day.Before(today) {
		return ErrInvalidDate
	}

	maxDate := today.AddDate(0, policy.AdvanceMonths, 0)
	if day.After(maxDate) {
		return fmt.Errorf("%w: can only book %d months in advance", ErrDateTooFarInFuture, policy.AdvanceMonths)
	}

	// Для записи на сегодня действует минимальный запас до начала слота
	if isSameDay(date, now) {
		slotMinutes, err := slot.Minutes()
		if err != nil {
			return ErrInvalidTimeSlot
		}

		nowInLoc := now.In(loc)
		nowMinutes := nowInLoc.Hour()*60 + nowInLoc.Minute()

		if slotMinutes <= nowMinutes+policy.MinNoticeMinutes {
			return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, policy.MinNoticeMinutes)
		}
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// calendarDay возвращает начало календарного дня в зоне loc,
// учитывая только компоненты даты значения, не его исходную зону
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

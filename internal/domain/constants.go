package domain

import "github.com/logoped-app/appointment-service/pkg/types"

// Booking code constants
const (
	BookingCodeLength   = 5
	BookingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// MaxCodeGenerationAttempts ограничивает подбор уникального кода;
	// исчерпание попыток — фатальная ошибка запроса
	MaxCodeGenerationAttempts = 10
)

// Business validation constants
const (
	MinNameLength    = 2
	MaxNameLength    = 50
	MaxMessageLength = 500

	// MinBookingNoticeMinutes минимальное время до начала слота при
	// бронировании и в выдаче доступных слотов на сегодня
	MinBookingNoticeMinutes = 30

	// AdvanceBookingMonths горизонт бронирования и агрегации занятых дат
	AdvanceBookingMonths = 6
)

// Default business-day schedule
const (
	DefaultOpenTime            = types.TimeString("09:00")
	DefaultCloseTime           = types.TimeString("18:00")
	DefaultSlotDurationMinutes = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone единственная временная зона сервиса
const DefaultTimezone = "Europe/Moscow"

// BookingPolicy are the injected booking rules shared by the usecases
type BookingPolicy struct {
	MinNoticeMinutes int
	AdvanceMonths    int
}

// DefaultBookingPolicy returns the standard booking rules
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		MinNoticeMinutes: MinBookingNoticeMinutes,
		AdvanceMonths:    AdvanceBookingMonths,
	}
}

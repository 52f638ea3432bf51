package create_appointment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/logoped-app/appointment-service/internal/domain"
)

// generateBookingCode возвращает случайный код из заглавных латинских букв
// Пространство кодов 26^5 ≈ 11.9M значений
func generateBookingCode() string {
	b := make([]byte, domain.BookingCodeLength)
	for i := range b {
		b[i] = domain.BookingCodeAlphabet[rand.Intn(len(domain.BookingCodeAlphabet))]
	}
	return string(b)
}

// generateUniqueCode подбирает код, отсутствующий среди всех записей
// (активных и отмененных), за ограниченное число попыток.
//
// Проверка по БД — оптимизация, а не гарантия: финальную уникальность
// обеспечивает уникальный индекс на booking_code при вставке
func (uc *UseCase) generateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < domain.MaxCodeGenerationAttempts; attempt++ {
		code := generateBookingCode()

		exists, err := uc.appointmentRepo.ExistsByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%w: failed to check code uniqueness: %v", ErrInternal, err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", ErrCodeGenerationExhausted
}

package get_available_slots

import (
	"time"

	"github.com/logoped-app/appointment-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date        time.Time          // Дата, на которую запрашивались слоты
	Slots       []types.TimeString // Доступные слоты в порядке каталога
	TotalSlots  int                // Размер каталога слотов
	BookedSlots int                // Количество занятых слотов
}

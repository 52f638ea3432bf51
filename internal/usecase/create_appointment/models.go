package create_appointment

import (
	"time"

	"github.com/logoped-app/appointment-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Name          string           // Имя клиента
	Phone         string           // Телефон в международном формате
	Email         *string          // Email (опционально)
	PreferredDate time.Time        // Дата записи (без времени)
	PreferredTime types.TimeString // Время слота (например, "10:00")
	Message       *string          // Дополнительное сообщение (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID            int64            // ID созданной записи
	BookingCode   string           // Код записи для клиента (5 букв)
	Name          string           // Имя клиента
	Phone         string           // Телефон (нормализованный)
	Email         *string          // Email (нормализованный)
	PreferredDate time.Time        // Дата записи
	PreferredTime types.TimeString // Время слота
	Message       *string          // Сообщение
	Status        string           // Статус записи
	CreatedAt     time.Time        // Время создания
}

package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidName возвращается при некорректном имени клиента
	ErrInvalidName = errors.New("create_appointment: invalid client name")

	// ErrInvalidPhone возвращается при некорректном номере телефона
	ErrInvalidPhone = errors.New("create_appointment: invalid phone number")

	// ErrInvalidEmail возвращается при некорректном email
	ErrInvalidEmail = errors.New("create_appointment: invalid email")

	// ErrMessageTooLong возвращается при превышении длины сообщения
	ErrMessageTooLong = errors.New("create_appointment: message is too long")

	// ErrInvalidDate возвращается при некорректной дате записи (в прошлом)
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата выходит за горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время не входит в каталог слотов
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrTooLateToBook возвращается, когда до начала слота меньше минимального запаса
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят активной записью
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrCodeGenerationExhausted возвращается при исчерпании попыток подбора
	// уникального кода записи — фатальная ошибка запроса, говорит о
	// насыщении пространства кодов либо о сбое чтения из БД
	ErrCodeGenerationExhausted = errors.New("create_appointment: failed to generate unique booking code")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

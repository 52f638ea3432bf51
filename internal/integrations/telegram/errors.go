package telegram

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegram client: internal error")

	// ErrSendFailed возвращается, когда Bot API отклонил или не принял сообщение
	ErrSendFailed = errors.New("telegram client: failed to send message")
)

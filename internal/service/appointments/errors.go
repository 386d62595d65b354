package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда приём в терминальном статусе
	// и не может быть отменён
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrTooLateToCancel возвращается, когда клиент отменяет приём позже,
	// чем за minNoticeHours до начала. На админа ограничение не действует
	ErrTooLateToCancel = errors.New("too late to cancel this appointment")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotYetStarted возвращается при попытке пометить no-show приём,
	// время которого ещё не наступило
	ErrNotYetStarted = errors.New("appointment has not started yet")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments service: internal error")
)

package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrTerminalState возвращается при попытке перенести приём в терминальном статусе
	ErrTerminalState = errors.New("reschedule_appointment: appointment is in a terminal state")

	// ErrSlotConflict возвращается, когда новый интервал пересекается
	// с существующим активным приёмом
	ErrSlotConflict = errors.New("reschedule_appointment: new interval conflicts with an existing appointment")

	// ErrInvalidDate возвращается при дате переноса в прошлом
	ErrInvalidDate = errors.New("reschedule_appointment: invalid appointment date")

	// ErrDateBlocked возвращается, когда дата полностью закрыта для записи
	ErrDateBlocked = errors.New("reschedule_appointment: date is blocked for booking")

	// ErrDayClosed возвращается, когда в этот день недели приёмы не ведутся
	ErrDayClosed = errors.New("reschedule_appointment: day is not open for booking")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("reschedule_appointment: interval is outside business hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)

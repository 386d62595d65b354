package create_appointment

import "errors"

var (
	// ErrSlotConflict возвращается, когда запрошенный интервал пересекается
	// с существующим активным приёмом
	ErrSlotConflict = errors.New("create_appointment: requested interval conflicts with an existing appointment")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrDateBlocked возвращается, когда дата полностью закрыта для записи
	ErrDateBlocked = errors.New("create_appointment: date is blocked for booking")

	// ErrDayClosed возвращается, когда в этот день недели приёмы не ведутся
	ErrDayClosed = errors.New("create_appointment: day is not open for booking")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("create_appointment: interval is outside business hours")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minNoticeHours
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

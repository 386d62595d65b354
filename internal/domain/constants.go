package domain

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinBufferMinutes       = 0
	MaxBufferMinutes       = 120
	MinAdvanceBookingDays  = 0
	MaxAdvanceBookingDays  = 365 // 1 year
	MinMinNoticeHours      = 0
	MaxMinNoticeHours      = 168 // 1 week
	MaxNotesLength         = 1000
	MaxReasonLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, при которых приём не показывается в активных выборках
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses статусы активных приёмов
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

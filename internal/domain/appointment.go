package domain

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of a reading appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// statusTransitions закрытая таблица допустимых переходов статусов
// Любой переход, отсутствующий в таблице, отклоняется
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// ParseAppointmentStatus конвертирует строку в AppointmentStatus
// Возвращает false для неизвестного статуса
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	switch status {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return status, true
	default:
		return "", false
	}
}

// CanTransitionTo returns true if the transition to newStatus is allowed
func (s AppointmentStatus) CanTransitionTo(newStatus AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transition is allowed from s
func (s AppointmentStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// Appointment represents a scheduled tarot reading
type Appointment struct {
	ID          int64
	ClientID    int64
	OrderItemID *int64 // позиция заказа из магазина, если чтение куплено через каталог

	ScheduledDate   time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	Status AppointmentStatus

	ClientNotes *string
	AdminNotes  *string

	// Реквизиты видеовстречи приходят извне и хранятся как есть
	MeetingURL      *string
	MeetingPassword *string

	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsTerminal returns true if the appointment is in a terminal status
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return !a.Status.IsTerminal()
}

// CanBeRescheduled returns true if the appointment can be moved to a new slot
func (a *Appointment) CanBeRescheduled() bool {
	return !a.Status.IsTerminal()
}

// StartsAt возвращает момент начала приёма в указанной локации
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	y, m, d := a.ScheduledDate.Date()
	return time.Date(y, m, d, a.StartTime.Minutes()/60, a.StartTime.Minutes()%60, 0, 0, loc)
}

// AppointmentsFilter фильтр для выборки приёмов
type AppointmentsFilter struct {
	ClientID        *int64             // Фильтр по клиенту (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	ExcludeStatus   *AppointmentStatus // Исключить один статус (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show
}

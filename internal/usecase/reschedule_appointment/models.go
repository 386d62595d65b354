package reschedule_appointment

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

// Request модель запроса на перенос приёма
type Request struct {
	AppointmentID int64            // ID переносимого приёма
	Date          time.Time        // Новая дата (без времени)
	StartTime     types.TimeString // Новое время начала
	EndTime       types.TimeString // Новое время конца
}

// Response модель ответа с перенесённым приёмом
type Response struct {
	ID              int64
	ClientID        int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	UpdatedAt       time.Time
}

// FromDomain конвертирует доменную модель в ответ use case
func FromDomain(appt *domain.Appointment) *Response {
	return &Response{
		ID:              appt.ID,
		ClientID:        appt.ClientID,
		Date:            appt.ScheduledDate,
		StartTime:       appt.StartTime,
		EndTime:         appt.EndTime,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		UpdatedAt:       appt.UpdatedAt,
	}
}

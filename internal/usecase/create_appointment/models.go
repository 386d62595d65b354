package create_appointment

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

// Request модель запроса на создание приёма
type Request struct {
	ClientID        int64            // ID клиента
	OrderItemID     *int64           // Позиция заказа, если чтение куплено через магазин (опционально)
	Date            time.Time        // Дата приёма (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	EndTime         types.TimeString // Время конца
	DurationMinutes int              // Длительность в минутах
	ClientNotes     *string          // Вопрос/пожелания клиента (опционально)
}

// Response модель ответа с созданным приёмом
type Response struct {
	ID              int64
	ClientID        int64
	OrderItemID     *int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	ClientNotes     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FromDomain конвертирует доменную модель в ответ use case
func FromDomain(appt *domain.Appointment) *Response {
	return &Response{
		ID:              appt.ID,
		ClientID:        appt.ClientID,
		OrderItemID:     appt.OrderItemID,
		Date:            appt.ScheduledDate,
		StartTime:       appt.StartTime,
		EndTime:         appt.EndTime,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		ClientNotes:     appt.ClientNotes,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}

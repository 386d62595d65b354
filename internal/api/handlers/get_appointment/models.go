package get_appointment

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/appointments/models"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	ClientID           int64   `json:"clientId"`
	OrderItemID        *int64  `json:"orderItemId,omitempty"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	ClientNotes        *string `json:"clientNotes,omitempty"`
	AdminNotes         *string `json:"adminNotes,omitempty"`
	MeetingURL         *string `json:"meetingUrl,omitempty"`
	MeetingPassword    *string `json:"meetingPassword,omitempty"`
	ConfirmedAt        *string `json:"confirmedAt,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentResponse) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 resp.ID,
		ClientID:           resp.ClientID,
		OrderItemID:        resp.OrderItemID,
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime,
		EndTime:            resp.EndTime,
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		ClientNotes:        resp.ClientNotes,
		AdminNotes:         resp.AdminNotes,
		MeetingURL:         resp.MeetingURL,
		MeetingPassword:    resp.MeetingPassword,
		ConfirmedAt:        formatTime(resp.ConfirmedAt),
		CancelledAt:        formatTime(resp.CancelledAt),
		CancellationReason: resp.CancellationReason,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

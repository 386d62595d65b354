package get_admin_appointments

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/appointments/models"
)

// AppointmentResponse HTTP модель приёма в админском списке
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
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// AppointmentListResponse HTTP модель списка приёмов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentListResponse) *AppointmentListResponse {
	out := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(resp.Appointments)),
		Total:        resp.Total,
	}

	for _, appt := range resp.Appointments {
		out.Appointments = append(out.Appointments, AppointmentResponse{
			ID:                 appt.ID,
			ClientID:           appt.ClientID,
			OrderItemID:        appt.OrderItemID,
			Date:               appt.Date.Format(domain.DateFormat),
			StartTime:          appt.StartTime,
			EndTime:            appt.EndTime,
			DurationMinutes:    appt.DurationMinutes,
			Status:             appt.Status,
			ClientNotes:        appt.ClientNotes,
			AdminNotes:         appt.AdminNotes,
			MeetingURL:         appt.MeetingURL,
			CancellationReason: appt.CancellationReason,
			CreatedAt:          appt.CreatedAt.Format(time.RFC3339),
			UpdatedAt:          appt.UpdatedAt.Format(time.RFC3339),
		})
	}

	return out
}

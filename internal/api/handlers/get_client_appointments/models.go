package get_client_appointments

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/appointments/models"
)

// AppointmentResponse HTTP модель приёма в списке
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ClientNotes     *string `json:"clientNotes,omitempty"`
	MeetingURL      *string `json:"meetingUrl,omitempty"`
	CreatedAt       string  `json:"createdAt"`
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
			ID:              appt.ID,
			ClientID:        appt.ClientID,
			Date:            appt.Date.Format(domain.DateFormat),
			StartTime:       appt.StartTime,
			EndTime:         appt.EndTime,
			DurationMinutes: appt.DurationMinutes,
			Status:          appt.Status,
			ClientNotes:     appt.ClientNotes,
			MeetingURL:      appt.MeetingURL,
			CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		})
	}

	return out
}

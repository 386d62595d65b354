package cancel_appointment

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	ClientID           int64   `json:"clientId"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(actorID int64, role domain.ActorRole) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		ActorID:            actorID,
		ActorRole:          role,
		CancellationReason: r.CancellationReason,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentResponse) *AppointmentResponse {
	out := &AppointmentResponse{
		ID:                 resp.ID,
		ClientID:           resp.ClientID,
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime,
		EndTime:            resp.EndTime,
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		CancellationReason: resp.CancellationReason,
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.CancelledAt != nil {
		cancelledAt := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}

	return out
}

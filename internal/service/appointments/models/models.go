package models

import (
	"errors"
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// CancelAppointmentRequest запрос на отмену приёма
type CancelAppointmentRequest struct {
	ActorID            int64
	ActorRole          domain.ActorRole
	CancellationReason *string
}

// UpdateStatusRequest запрос на обновление статуса приёма
type UpdateStatusRequest struct {
	Status string
}

// GetClientAppointmentsRequest запрос на получение приёмов клиента
type GetClientAppointmentsRequest struct {
	ClientID int64
	Status   *string
}

// ListAppointmentsRequest запрос на получение приёмов с фильтрацией (админка)
type ListAppointmentsRequest struct {
	ClientID        *int64
	DateFrom        *string // YYYY-MM-DD
	DateTo          *string // YYYY-MM-DD
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует запрос в доменный фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		ClientID:        r.ClientID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.DateFrom != nil {
		date, err := time.Parse(domain.DateFormat, *r.DateFrom)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.StartDate = &date
	}
	if r.DateTo != nil {
		date, err := time.Parse(domain.DateFormat, *r.DateTo)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.EndDate = &date
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse приём в ответах сервиса
type AppointmentResponse struct {
	ID                 int64
	ClientID           int64
	OrderItemID        *int64
	Date               time.Time
	StartTime          string
	EndTime            string
	DurationMinutes    int
	Status             string
	ClientNotes        *string
	AdminNotes         *string
	MeetingURL         *string
	MeetingPassword    *string
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AppointmentListResponse список приёмов
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse
	Total        int
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status, ok := domain.ParseAppointmentStatus(s)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainAppointment конвертирует доменную модель в ответ сервиса
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 appt.ID,
		ClientID:           appt.ClientID,
		OrderItemID:        appt.OrderItemID,
		Date:               appt.ScheduledDate,
		StartTime:          appt.StartTime.String(),
		EndTime:            appt.EndTime.String(),
		DurationMinutes:    appt.DurationMinutes,
		Status:             string(appt.Status),
		ClientNotes:        appt.ClientNotes,
		AdminNotes:         appt.AdminNotes,
		MeetingURL:         appt.MeetingURL,
		MeetingPassword:    appt.MeetingPassword,
		ConfirmedAt:        appt.ConfirmedAt,
		CancelledAt:        appt.CancelledAt,
		CancellationReason: appt.CancellationReason,
		CreatedAt:          appt.CreatedAt,
		UpdatedAt:          appt.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список доменных моделей
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		result[i] = FromDomainAppointment(appt)
	}
	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}

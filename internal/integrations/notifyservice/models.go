package notifyservice

// Event тип уведомления о приёме
type Event string

const (
	EventCreated     Event = "appointment.created"
	EventRescheduled Event = "appointment.rescheduled"
	EventCancelled   Event = "appointment.cancelled"
	EventReminder    Event = "appointment.reminder"
)

// notificationRequest тело запроса к сервису уведомлений
type notificationRequest struct {
	Event           Event   `json:"event"`
	AppointmentID   int64   `json:"appointmentId"`
	ClientID        int64   `json:"clientId"`
	ScheduledDate   string  `json:"scheduledDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Status          string  `json:"status"`
	MeetingURL      *string `json:"meetingUrl,omitempty"`
	MeetingPassword *string `json:"meetingPassword,omitempty"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений (email/telegram рассылки живут там)
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
		log:     log,
	}
}

// Notify отправляет уведомление о событии приёма
func (c *Client) Notify(ctx context.Context, event Event, appt *domain.Appointment) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	payload := notificationRequest{
		Event:           event,
		AppointmentID:   appt.ID,
		ClientID:        appt.ClientID,
		ScheduledDate:   appt.ScheduledDate.Format(domain.DateFormat),
		StartTime:       appt.StartTime.String(),
		EndTime:         appt.EndTime.String(),
		Status:          string(appt.Status),
		MeetingURL:      appt.MeetingURL,
		MeetingPassword: appt.MeetingPassword,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// NotifyAsync отправляет уведомление в фоне (fire-and-forget)
// Ошибка доставки логируется, но никогда не влияет на результат операции
// бронирования: уведомления - побочный эффект, а не часть транзакции
func (c *Client) NotifyAsync(event Event, appt *domain.Appointment) {
	// Копия, чтобы не гоняться с вызывающей горутиной
	apptCopy := *appt

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.Notify(ctx, event, &apptCopy); err != nil {
			c.log.Error("NotifyAsync: failed to deliver %s for appointment id=%d: %v",
				event, apptCopy.ID, err)
			return
		}

		c.log.Info("NotifyAsync: delivered %s for appointment id=%d", event, apptCopy.ID)
	}()
}

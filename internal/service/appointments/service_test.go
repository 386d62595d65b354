package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	appointmentRepo "github.com/arcana-platform/Arcana-SchedulingService/internal/infra/storage/appointment"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/integrations/notifyservice"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/appointments/models"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/ptr"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointment     *domain.Appointment
	list            []*domain.Appointment
	getErr          error
	cancelledID     int64
	cancelledReason *string
	updatedStatus   *domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetByClientID(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return f.list, nil
}

func (f *fakeAppointmentRepo) GetWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.list, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, reason *string) error {
	f.cancelledID = id
	f.cancelledReason = reason
	return nil
}

type fakeScheduleRepo struct {
	config *domain.ScheduleConfig
}

func (f *fakeScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	return f.config, nil
}

type fakeNotifier struct {
	events []notifyservice.Event
}

func (f *fakeNotifier) NotifyAsync(event notifyservice.Event, _ *domain.Appointment) {
	f.events = append(f.events, event)
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Сейчас 2025-10-10 12:00, приём клиента 7 стоит на 2025-10-15 14:00
var testNow = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              5,
		ClientID:        7,
		ScheduledDate:   time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("14:00"),
		EndTime:         types.TimeString("14:30"),
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}
}

func testConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		MinNoticeHours: 24,
		Timezone:       "UTC",
	}
}

func newTestService(repo *fakeAppointmentRepo, notifier *fakeNotifier, now time.Time) *Service {
	svc := NewService(repo, &fakeScheduleRepo{config: testConfig()}, notifier, &fakeTxManager{}, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func TestGetByID_ClientSeesOwn(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	resp, err := svc.GetByID(context.Background(), 5, 7, domain.RoleClient)

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
}

func TestGetByID_ClientCannotSeeForeign(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	_, err := svc.GetByID(context.Background(), 5, 99, domain.RoleClient)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AdminSeesAny(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	resp, err := svc.GetByID(context.Background(), 5, 99, domain.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{getErr: appointmentRepo.ErrAppointmentNotFound}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	_, err := svc.GetByID(context.Background(), 5, 7, domain.RoleClient)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_ClientWithEnoughNotice(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier, testNow)

	reason := ptr.Ptr("планы изменились")
	resp, err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{
		ActorID:            7,
		ActorRole:          domain.RoleClient,
		CancellationReason: reason,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.cancelledID)
	assert.Equal(t, reason, repo.cancelledReason)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []notifyservice.Event{notifyservice.EventCancelled}, notifier.events)
}

func TestCancel_ClientInsideNoticeWindow(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	notifier := &fakeNotifier{}
	// За 2 часа до начала при 24-часовом notice
	svc := newTestService(repo, notifier, time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC))

	_, err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{
		ActorID:   7,
		ActorRole: domain.RoleClient,
	})

	assert.ErrorIs(t, err, ErrTooLateToCancel)
	assert.Zero(t, repo.cancelledID)
	assert.Empty(t, notifier.events)
}

func TestCancel_AdminIgnoresNoticeWindow(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	notifier := &fakeNotifier{}
	// То же время, но отменяет админ
	svc := newTestService(repo, notifier, time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC))

	_, err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{
		ActorID:   1,
		ActorRole: domain.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.cancelledID)
}

func TestCancel_ClientCannotCancelForeign(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	_, err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{
		ActorID:   99,
		ActorRole: domain.RoleClient,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_TerminalStatus(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		appt := testAppointment()
		appt.Status = status
		repo := &fakeAppointmentRepo{appointment: appt}
		svc := newTestService(repo, &fakeNotifier{}, testNow)

		_, err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{
			ActorID:   1,
			ActorRole: domain.RoleAdmin,
		})

		assert.ErrorIs(t, err, ErrCannotCancel, string(status))
	}
}

func TestCancel_RunsInTransaction(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	txManager := &fakeTxManager{}
	svc := NewService(repo, &fakeScheduleRepo{config: testConfig()}, &fakeNotifier{}, txManager, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}

	_, err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{
		ActorID:   1,
		ActorRole: domain.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, txManager.calls)
}

func TestUpdateStatus_RunsInTransaction(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	txManager := &fakeTxManager{}
	svc := NewService(repo, &fakeScheduleRepo{config: testConfig()}, &fakeNotifier{}, txManager, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, 1, txManager.calls)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	resp, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{Status: "confirmed"})

	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
	assert.Equal(t, "confirmed", resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	appt := testAppointment()
	appt.Status = domain.StatusCompleted
	repo := &fakeAppointmentRepo{appointment: appt}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{Status: "confirmed"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, repo.updatedStatus)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{Status: "pending"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_NoShowBeforeStart(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	// Приём ещё не начался
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{Status: "no_show"})

	assert.ErrorIs(t, err, ErrNotYetStarted)
}

func TestUpdateStatus_NoShowAfterStart(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	// Через час после начала приёма
	svc := newTestService(repo, &fakeNotifier{}, time.Date(2025, 10, 15, 15, 0, 0, 0, time.UTC))

	resp, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{Status: "no_show"})

	require.NoError(t, err)
	assert.Equal(t, "no_show", resp.Status)
}

func TestUpdateStatus_CancelledNotifiesClient(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier, testNow)

	_, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{Status: "cancelled"})

	require.NoError(t, err)
	assert.Equal(t, []notifyservice.Event{notifyservice.EventCancelled}, notifier.events)
}

func TestSendReminder(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier, testNow)

	require.NoError(t, svc.SendReminder(context.Background(), 5))
	assert.Equal(t, []notifyservice.Event{notifyservice.EventReminder}, notifier.events)
}

func TestSendReminder_TerminalStatus(t *testing.T) {
	appt := testAppointment()
	appt.Status = domain.StatusCancelled
	repo := &fakeAppointmentRepo{appointment: appt}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier, testNow)

	err := svc.SendReminder(context.Background(), 5)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, notifier.events)
}

func TestGetClientAppointments(t *testing.T) {
	repo := &fakeAppointmentRepo{list: []*domain.Appointment{testAppointment()}}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	resp, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{ClientID: 7})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(5), resp.Appointments[0].ID)
}

func TestGetClientAppointments_InvalidStatus(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	_, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		ClientID: 7,
		Status:   ptr.Ptr("pending"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_InvalidDateFilter(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc := newTestService(repo, &fakeNotifier{}, testNow)

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		DateFrom: ptr.Ptr("15.10.2025"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

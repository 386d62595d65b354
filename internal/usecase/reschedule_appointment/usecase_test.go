package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	appointmentRepo "github.com/arcana-platform/Arcana-SchedulingService/internal/infra/storage/appointment"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/integrations/notifyservice"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointment   *domain.Appointment
	existing      []*domain.Appointment
	rescheduled   bool
	getErr        error
	rescheduleErr error
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.existing, nil
}

func (f *fakeAppointmentRepo) Reschedule(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString, _ int) error {
	if f.rescheduleErr != nil {
		return f.rescheduleErr
	}
	f.rescheduled = true
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

func timePtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

func testConfig() *domain.ScheduleConfig {
	weekday := domain.DayHours{Enabled: true, OpenTime: timePtr("09:00"), CloseTime: timePtr("18:00")}
	return &domain.ScheduleConfig{
		Hours: domain.WeeklyHours{
			Monday:    weekday,
			Tuesday:   weekday,
			Wednesday: weekday,
			Thursday:  weekday,
			Friday:    weekday,
		},
		SlotDurationMinutes: 30,
		AdvanceBookingDays:  30,
		MinNoticeHours:      24,
		Timezone:            "UTC",
	}
}

var (
	testNow  = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
)

func testAppointment() *domain.Appointment {
	confirmedAt := time.Date(2025, 10, 9, 15, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:              5,
		ClientID:        7,
		ScheduledDate:   time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("11:00"),
		EndTime:         types.TimeString("11:30"),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
		ConfirmedAt:     &confirmedAt,
	}
}

func validRequest() *Request {
	return &Request{
		AppointmentID: 5,
		Date:          testDate,
		StartTime:     types.TimeString("10:00"),
		EndTime:       types.TimeString("10:30"),
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, notifier *fakeNotifier) *UseCase {
	uc := NewUseCase(repo, &fakeScheduleRepo{config: testConfig()}, notifier, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	notifier := &fakeNotifier{}

	uc := newTestUseCase(repo, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, repo.rescheduled)
	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, "10:00", resp.StartTime.String())
	// Подтверждение снимается: клиент должен подтвердить новый слот заново
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, []notifyservice.Event{notifyservice.EventRescheduled}, notifier.events)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{getErr: appointmentRepo.ErrAppointmentNotFound}

	uc := newTestUseCase(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_TerminalState(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		appt := testAppointment()
		appt.Status = status
		repo := &fakeAppointmentRepo{appointment: appt}

		uc := newTestUseCase(repo, &fakeNotifier{})

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrTerminalState, string(status))
		assert.False(t, repo.rescheduled)
	}
}

func TestExecute_ConflictWithOtherAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointment: testAppointment(),
		existing: []*domain.Appointment{
			{
				ID:        9,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("10:30"),
				Status:    domain.StatusScheduled,
			},
		},
	}

	uc := newTestUseCase(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_OwnIntervalDoesNotConflict(t *testing.T) {
	// Приём 5 уже стоит на целевом интервале: перенос на то же место проходит
	occupying := testAppointment()
	occupying.ScheduledDate = testDate
	occupying.StartTime = types.TimeString("10:00")
	occupying.EndTime = types.TimeString("10:30")

	repo := &fakeAppointmentRepo{
		appointment: testAppointment(),
		existing:    []*domain.Appointment{occupying},
	}

	uc := newTestUseCase(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, repo.rescheduled)
}

func TestExecute_PastDate(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}

	uc := newTestUseCase(repo, &fakeNotifier{})

	req := validRequest()
	req.Date = time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DayClosed(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}

	uc := newTestUseCase(repo, &fakeNotifier{})

	req := validRequest()
	// 2025-10-18 - суббота
	req.Date = time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDayClosed)
}

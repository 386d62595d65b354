package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/integrations/notifyservice"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	existing   []*domain.Appointment
	created    *domain.Appointment
	nextID     int64
	createErr  error
	getDateErr error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	saved := *appt
	saved.ID = f.nextID
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = saved.CreatedAt
	f.created = &saved
	return &saved, nil
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.existing, f.getDateErr
}

type fakeScheduleRepo struct {
	config *domain.ScheduleConfig
	err    error
}

func (f *fakeScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	return f.config, f.err
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

// Сейчас пятница 2025-10-10 12:00, бронируем на среду 2025-10-15
var (
	testNow  = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
)

func validRequest() *Request {
	return &Request{
		ClientID:        7,
		Date:            testDate,
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("10:30"),
		DurationMinutes: 30,
	}
}

func newTestUseCase(apptRepo *fakeAppointmentRepo, schedRepo *fakeScheduleRepo, notifier *fakeNotifier) *UseCase {
	uc := NewUseCase(apptRepo, schedRepo, notifier, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{nextID: 42}
	notifier := &fakeNotifier{}

	uc := newTestUseCase(apptRepo, &fakeScheduleRepo{config: testConfig()}, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(7), resp.ClientID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, []notifyservice.Event{notifyservice.EventCreated}, notifier.events)
}

func TestExecute_SlotConflict(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		nextID: 42,
		existing: []*domain.Appointment{
			{
				ID:        1,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("10:30"),
				Status:    domain.StatusScheduled,
			},
		},
	}
	notifier := &fakeNotifier{}

	uc := newTestUseCase(apptRepo, &fakeScheduleRepo{config: testConfig()}, notifier)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, notifier.events)
}

func TestExecute_NoShowIntervalStillOccupied(t *testing.T) {
	// no_show не освобождает интервал: свободным время делает только отмена
	apptRepo := &fakeAppointmentRepo{
		nextID: 42,
		existing: []*domain.Appointment{
			{
				ID:        1,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("10:30"),
				Status:    domain.StatusNoShow,
			},
		},
	}
	notifier := &fakeNotifier{}

	uc := newTestUseCase(apptRepo, &fakeScheduleRepo{config: testConfig()}, notifier)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, notifier.events)
}

func TestExecute_CancelledIntervalIsFree(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		nextID: 42,
		existing: []*domain.Appointment{
			{
				ID:        1,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("10:30"),
				Status:    domain.StatusCancelled,
			},
		},
	}

	uc := newTestUseCase(apptRepo, &fakeScheduleRepo{config: testConfig()}, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecute_TouchingIntervalIsFree(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		nextID: 42,
		existing: []*domain.Appointment{
			{
				ID:        1,
				StartTime: types.TimeString("09:30"),
				EndTime:   types.TimeString("10:00"),
				Status:    domain.StatusConfirmed,
			},
		},
	}

	uc := newTestUseCase(apptRepo, &fakeScheduleRepo{config: testConfig()}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{config: testConfig()}, &fakeNotifier{})

	req := validRequest()
	req.Date = time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFar(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{config: testConfig()}, &fakeNotifier{})

	req := validRequest()
	req.Date = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_BlockedDate(t *testing.T) {
	config := testConfig()
	config.BlockedDates = []time.Time{testDate}

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{config: config}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDateBlocked)
}

func TestExecute_DayClosed(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{config: testConfig()}, &fakeNotifier{})

	req := validRequest()
	// 2025-10-18 - суббота
	req.Date = time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDayClosed)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{config: testConfig()}, &fakeNotifier{})

	req := validRequest()
	req.StartTime = types.TimeString("17:45")
	req.EndTime = types.TimeString("18:15")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_TooLateToBook(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{config: testConfig()}, &fakeNotifier{})

	req := validRequest()
	// Сегодня 14:00 при 24-часовом notice (сейчас 2025-10-10 12:00)
	req.Date = time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
	req.StartTime = types.TimeString("14:00")
	req.EndTime = types.TimeString("14:30")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{config: testConfig()}, &fakeNotifier{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero client", mutate: func(r *Request) { r.ClientID = 0 }},
		{name: "start after end", mutate: func(r *Request) {
			r.StartTime = types.TimeString("11:00")
			r.EndTime = types.TimeString("10:00")
		}},
		{name: "duration mismatch", mutate: func(r *Request) { r.DurationMinutes = 45 }},
		{name: "zero duration", mutate: func(r *Request) { r.DurationMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

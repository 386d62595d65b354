package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

func TestParseAppointmentStatus(t *testing.T) {
	for _, valid := range []string{"scheduled", "confirmed", "in_progress", "completed", "cancelled", "no_show"} {
		status, ok := ParseAppointmentStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, AppointmentStatus(valid), status)
	}

	_, ok := ParseAppointmentStatus("pending")
	assert.False(t, ok)

	_, ok = ParseAppointmentStatus("")
	assert.False(t, ok)
}

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusNoShow, true},
		{StatusScheduled, StatusInProgress, false},
		{StatusScheduled, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusNoShow, true},
		{StatusInProgress, StatusConfirmed, false},
		// Из терминальных статусов переходов нет
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusNoShow, StatusScheduled, false},
		// Переход в самого себя не разрешён
		{StatusScheduled, StatusScheduled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	appt := &Appointment{Status: StatusConfirmed}
	assert.True(t, appt.CanBeCancelled())

	appt.Status = StatusCompleted
	assert.False(t, appt.CanBeCancelled())

	appt.Status = StatusCancelled
	assert.False(t, appt.CanBeCancelled())
}

func TestAppointment_StartsAt(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	appt := &Appointment{
		ScheduledDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("14:30"),
	}

	startsAt := appt.StartsAt(loc)
	assert.Equal(t, time.Date(2025, 10, 15, 14, 30, 0, 0, loc), startsAt)
}

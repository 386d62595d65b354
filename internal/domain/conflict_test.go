package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{name: "touching endpoints do not overlap", aStart: "09:00", aEnd: "09:30", bStart: "09:30", bEnd: "10:00", want: false},
		{name: "touching endpoints reversed", aStart: "09:30", aEnd: "10:00", bStart: "09:00", bEnd: "09:30", want: false},
		{name: "partial overlap", aStart: "09:00", aEnd: "09:45", bStart: "09:30", bEnd: "10:00", want: true},
		{name: "full containment", aStart: "09:00", aEnd: "11:00", bStart: "09:30", bEnd: "10:00", want: true},
		{name: "identical intervals", aStart: "09:00", aEnd: "09:30", bStart: "09:00", bEnd: "09:30", want: true},
		{name: "disjoint intervals", aStart: "09:00", aEnd: "09:30", bStart: "14:00", bEnd: "14:30", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				types.TimeString(tt.aStart), types.TimeString(tt.aEnd),
				types.TimeString(tt.bStart), types.TimeString(tt.bEnd),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []*Appointment{
		{
			ID:        1,
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("10:30"),
			Status:    StatusScheduled,
		},
	}

	t.Run("overlapping interval conflicts", func(t *testing.T) {
		assert.True(t, HasConflict(types.TimeString("10:15"), types.TimeString("10:45"), existing, 0, nil))
	})

	t.Run("touching interval does not conflict", func(t *testing.T) {
		assert.False(t, HasConflict(types.TimeString("10:30"), types.TimeString("11:00"), existing, 0, nil))
	})

	t.Run("cancelled appointment never conflicts", func(t *testing.T) {
		cancelled := []*Appointment{
			{
				ID:        2,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("10:30"),
				Status:    StatusCancelled,
			},
		}
		assert.False(t, HasConflict(types.TimeString("10:00"), types.TimeString("10:30"), cancelled, 0, nil))
	})

	t.Run("completed appointment still occupies its slot", func(t *testing.T) {
		completed := []*Appointment{
			{
				ID:        3,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("10:30"),
				Status:    StatusCompleted,
			},
		}
		assert.True(t, HasConflict(types.TimeString("10:00"), types.TimeString("10:30"), completed, 0, nil))
	})

	t.Run("excluded appointment is skipped", func(t *testing.T) {
		excludeID := int64(1)
		assert.False(t, HasConflict(types.TimeString("10:00"), types.TimeString("10:30"), existing, 0, &excludeID))
	})

	t.Run("buffer extends occupied interval", func(t *testing.T) {
		// С буфером 15 минут приём 10:00-10:30 блокирует слоты до 10:45
		assert.True(t, HasConflict(types.TimeString("10:30"), types.TimeString("11:00"), existing, 15, nil))
		assert.False(t, HasConflict(types.TimeString("10:45"), types.TimeString("11:15"), existing, 15, nil))
	})

	t.Run("no existing appointments", func(t *testing.T) {
		assert.False(t, HasConflict(types.TimeString("10:00"), types.TimeString("10:30"), nil, 0, nil))
	})
}

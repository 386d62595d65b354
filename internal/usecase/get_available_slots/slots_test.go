package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

func timePtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

// Рабочая неделя пн-пт 09:00-18:00, слоты по 30 минут
func testConfig() *domain.ScheduleConfig {
	weekday := domain.DayHours{Enabled: true, OpenTime: timePtr("09:00"), CloseTime: timePtr("18:00")}
	return &domain.ScheduleConfig{
		Hours: domain.WeeklyHours{
			Monday:    weekday,
			Tuesday:   weekday,
			Wednesday: weekday,
			Thursday:  weekday,
			Friday:    weekday,
			Saturday:  domain.DayHours{Enabled: false},
			Sunday:    domain.DayHours{Enabled: false},
		},
		SlotDurationMinutes: 30,
		AdvanceBookingDays:  30,
		MinNoticeHours:      24,
		Timezone:            "UTC",
	}
}

func TestGenerateSlots_FullGrid(t *testing.T) {
	config := testConfig()
	// 2025-10-15 - среда
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	slots := generateSlots(config, date, now)

	// 09:00-18:00 с шагом 30 минут = 18 слотов
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].Start.String())
	assert.Equal(t, "09:30", slots[0].End.String())
	assert.Equal(t, "17:30", slots[17].Start.String())
	assert.Equal(t, "18:00", slots[17].End.String())

	// Слоты упорядочены и не пересекаются
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
}

func TestGenerateSlots_LastSlotFitsWithinClosing(t *testing.T) {
	config := testConfig()
	// 50-минутные слоты в 9 часах: последний должен закончиться не позже 18:00
	config.SlotDurationMinutes = 50
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	slots := generateSlots(config, date, now)

	require.NotEmpty(t, slots)
	last := slots[len(slots)-1]
	assert.LessOrEqual(t, last.End.Minutes(), 18*60)
}

func TestGenerateSlots_DisabledDay(t *testing.T) {
	config := testConfig()
	// 2025-10-18 - суббота
	date := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	assert.Empty(t, generateSlots(config, date, now))
}

func TestGenerateSlots_BlockedDate(t *testing.T) {
	config := testConfig()
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	config.BlockedDates = []time.Time{date}
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	assert.Empty(t, generateSlots(config, date, now))
}

func TestGenerateSlots_PastDate(t *testing.T) {
	config := testConfig()
	date := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	assert.Empty(t, generateSlots(config, date, now))
}

func TestGenerateSlots_BeyondAdvanceLimit(t *testing.T) {
	config := testConfig()
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, generateSlots(config, date, now))

	// При нулевом лимите ограничения нет
	config.AdvanceBookingDays = 0
	assert.NotEmpty(t, generateSlots(config, date, now))
}

func TestGenerateSlots_SameDayNoticeFilter(t *testing.T) {
	config := testConfig()
	config.MinNoticeHours = 2
	// Сегодня, 13:45: со 2-часовым notice первый доступный слот - 16:00
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 15, 13, 45, 0, 0, time.UTC)

	slots := generateSlots(config, date, now)

	require.NotEmpty(t, slots)
	assert.Equal(t, "16:00", slots[0].Start.String())

	// Notice period перешагивает закрытие - день пуст
	now = time.Date(2025, 10, 15, 17, 0, 0, 0, time.UTC)
	assert.Empty(t, generateSlots(config, date, now))
}

func TestGenerateSlots_MultiDayNoticeFilter(t *testing.T) {
	config := testConfig()
	config.MinNoticeHours = 48
	// Понедельник 12:00, notice 48 часов: граница - среда 12:00
	now := time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC)

	// Вторник целиком раньше границы - сетка пустая
	tuesday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, generateSlots(config, tuesday, now))

	// Среда: остаются только слоты с 12:00
	wednesday := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	slots := generateSlots(config, wednesday, now)

	require.Len(t, slots, 12)
	assert.Equal(t, "12:00", slots[0].Start.String())
	assert.Equal(t, "17:30", slots[11].Start.String())

	// Четверг за границей - сетка полная
	thursday := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	assert.Len(t, generateSlots(config, thursday, now), 18)
}

func TestMarkAvailability(t *testing.T) {
	slots := []domain.Slot{
		{Start: types.TimeString("09:00"), End: types.TimeString("09:30")},
		{Start: types.TimeString("09:30"), End: types.TimeString("10:00")},
		{Start: types.TimeString("10:00"), End: types.TimeString("10:30")},
	}
	existing := []*domain.Appointment{
		{
			ID:        1,
			StartTime: types.TimeString("09:30"),
			EndTime:   types.TimeString("10:00"),
			Status:    domain.StatusConfirmed,
		},
	}

	marked := markAvailability(slots, existing, 0)

	require.Len(t, marked, 3)
	assert.True(t, marked[0].Available)
	assert.False(t, marked[1].Available)
	assert.True(t, marked[2].Available)
	assert.Equal(t, 30, marked[0].DurationMinutes)
}

func TestMarkAvailability_NoShowBlocks(t *testing.T) {
	slots := []domain.Slot{
		{Start: types.TimeString("09:00"), End: types.TimeString("09:30")},
	}
	existing := []*domain.Appointment{
		{
			ID:        1,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("09:30"),
			Status:    domain.StatusNoShow,
		},
	}

	marked := markAvailability(slots, existing, 0)

	require.Len(t, marked, 1)
	assert.False(t, marked[0].Available)
}

func TestMarkAvailability_CancelledDoesNotBlock(t *testing.T) {
	slots := []domain.Slot{
		{Start: types.TimeString("09:00"), End: types.TimeString("09:30")},
	}
	existing := []*domain.Appointment{
		{
			ID:        1,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("09:30"),
			Status:    domain.StatusCancelled,
		},
	}

	marked := markAvailability(slots, existing, 0)

	require.Len(t, marked, 1)
	assert.True(t, marked[0].Available)
}

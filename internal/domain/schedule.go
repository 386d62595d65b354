package domain

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

// DayHours рабочие часы одного дня недели
type DayHours struct {
	Enabled   bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// WeeklyHours расписание работы по дням недели
type WeeklyHours struct {
	Monday    DayHours
	Tuesday   DayHours
	Wednesday DayHours
	Thursday  DayHours
	Friday    DayHours
	Saturday  DayHours
	Sunday    DayHours
}

// ForWeekday returns the hours configured for the given weekday
func (w WeeklyHours) ForWeekday(weekday time.Weekday) DayHours {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DayHours{Enabled: false}
	}
}

// ScheduleConfig represents the single active scheduling configuration:
// weekly business hours plus booking policy settings.
// All times are interpreted in the configured timezone
type ScheduleConfig struct {
	ID int64

	Hours WeeklyHours

	SlotDurationMinutes int
	BufferMinutes       int
	AdvanceBookingDays  int // 0 = unlimited
	MinNoticeHours      int

	BlockedDates []time.Time
	Timezone     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoursForDate returns the business hours for the date's weekday
func (c *ScheduleConfig) HoursForDate(date time.Time) DayHours {
	return c.Hours.ForWeekday(date.Weekday())
}

// IsBlocked returns true if the date is fully closed for booking
func (c *ScheduleConfig) IsBlocked(date time.Time) bool {
	y, m, d := date.Date()
	for _, blocked := range c.BlockedDates {
		by, bm, bd := blocked.Date()
		if y == by && m == bm && d == bd {
			return true
		}
	}
	return false
}

// HasAdvanceBookingLimit returns true if there is a limit on how far ahead
// appointments can be booked
func (c *ScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// MinNoticeMinutes возвращает notice period в минутах
func (c *ScheduleConfig) MinNoticeMinutes() int {
	return c.MinNoticeHours * 60
}

// Location возвращает таймзону конфигурации
// При некорректном значении используется UTC
func (c *ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

package models

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

// DayHoursPayload часы работы на один день недели
type DayHoursPayload struct {
	Enabled   bool    `json:"enabled"`
	OpenTime  *string `json:"openTime,omitempty"`  // HH:MM
	CloseTime *string `json:"closeTime,omitempty"` // HH:MM
}

// ScheduleConfigResponse полная конфигурация расписания
type ScheduleConfigResponse struct {
	Monday              DayHoursPayload `json:"monday"`
	Tuesday             DayHoursPayload `json:"tuesday"`
	Wednesday           DayHoursPayload `json:"wednesday"`
	Thursday            DayHoursPayload `json:"thursday"`
	Friday              DayHoursPayload `json:"friday"`
	Saturday            DayHoursPayload `json:"saturday"`
	Sunday              DayHoursPayload `json:"sunday"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	BufferMinutes       int             `json:"bufferMinutes"`
	AdvanceBookingDays  int             `json:"advanceBookingDays"`
	MinNoticeHours      int             `json:"minNoticeHours"`
	BlockedDates        []string        `json:"blockedDates"` // YYYY-MM-DD
	Timezone            string          `json:"timezone"`
}

// UpdateScheduleConfigRequest запрос на обновление конфигурации расписания
type UpdateScheduleConfigRequest struct {
	Monday              DayHoursPayload `json:"monday"`
	Tuesday             DayHoursPayload `json:"tuesday"`
	Wednesday           DayHoursPayload `json:"wednesday"`
	Thursday            DayHoursPayload `json:"thursday"`
	Friday              DayHoursPayload `json:"friday"`
	Saturday            DayHoursPayload `json:"saturday"`
	Sunday              DayHoursPayload `json:"sunday"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	BufferMinutes       int             `json:"bufferMinutes"`
	AdvanceBookingDays  int             `json:"advanceBookingDays"`
	MinNoticeHours      int             `json:"minNoticeHours"`
	BlockedDates        []string        `json:"blockedDates"`
	Timezone            string          `json:"timezone"`
}

// FromDomainConfig конвертирует доменную конфигурацию в ответ API
func FromDomainConfig(config *domain.ScheduleConfig) *ScheduleConfigResponse {
	resp := &ScheduleConfigResponse{
		Monday:              fromDomainDay(config.Hours.Monday),
		Tuesday:             fromDomainDay(config.Hours.Tuesday),
		Wednesday:           fromDomainDay(config.Hours.Wednesday),
		Thursday:            fromDomainDay(config.Hours.Thursday),
		Friday:              fromDomainDay(config.Hours.Friday),
		Saturday:            fromDomainDay(config.Hours.Saturday),
		Sunday:              fromDomainDay(config.Hours.Sunday),
		SlotDurationMinutes: config.SlotDurationMinutes,
		BufferMinutes:       config.BufferMinutes,
		AdvanceBookingDays:  config.AdvanceBookingDays,
		MinNoticeHours:      config.MinNoticeHours,
		BlockedDates:        make([]string, 0, len(config.BlockedDates)),
		Timezone:            config.Timezone,
	}

	for _, date := range config.BlockedDates {
		resp.BlockedDates = append(resp.BlockedDates, date.Format(domain.DateFormat))
	}

	return resp
}

// ToDomainConfig конвертирует запрос в доменную конфигурацию
func (r *UpdateScheduleConfigRequest) ToDomainConfig() (*domain.ScheduleConfig, error) {
	config := &domain.ScheduleConfig{
		SlotDurationMinutes: r.SlotDurationMinutes,
		BufferMinutes:       r.BufferMinutes,
		AdvanceBookingDays:  r.AdvanceBookingDays,
		MinNoticeHours:      r.MinNoticeHours,
		BlockedDates:        make([]time.Time, 0, len(r.BlockedDates)),
		Timezone:            r.Timezone,
	}

	days := []struct {
		payload DayHoursPayload
		target  *domain.DayHours
	}{
		{r.Monday, &config.Hours.Monday},
		{r.Tuesday, &config.Hours.Tuesday},
		{r.Wednesday, &config.Hours.Wednesday},
		{r.Thursday, &config.Hours.Thursday},
		{r.Friday, &config.Hours.Friday},
		{r.Saturday, &config.Hours.Saturday},
		{r.Sunday, &config.Hours.Sunday},
	}

	for _, day := range days {
		converted, err := day.payload.toDomain()
		if err != nil {
			return nil, err
		}
		*day.target = converted
	}

	for _, raw := range r.BlockedDates {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		config.BlockedDates = append(config.BlockedDates, date)
	}

	return config, nil
}

func fromDomainDay(day domain.DayHours) DayHoursPayload {
	payload := DayHoursPayload{Enabled: day.Enabled}
	if day.OpenTime != nil {
		open := day.OpenTime.String()
		payload.OpenTime = &open
	}
	if day.CloseTime != nil {
		close := day.CloseTime.String()
		payload.CloseTime = &close
	}
	return payload
}

func (p DayHoursPayload) toDomain() (domain.DayHours, error) {
	day := domain.DayHours{Enabled: p.Enabled}

	if p.OpenTime != nil {
		ts, err := types.NewTimeStringFromString(*p.OpenTime)
		if err != nil {
			return domain.DayHours{}, err
		}
		day.OpenTime = &ts
	}

	if p.CloseTime != nil {
		ts, err := types.NewTimeStringFromString(*p.CloseTime)
		if err != nil {
			return domain.DayHours{}, err
		}
		day.CloseTime = &ts
	}

	return day, nil
}

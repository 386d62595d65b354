package create_appointment

import (
	"fmt"
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	// Инвариант: endTime - startTime == durationMinutes
	if req.StartTime.MinutesUntil(req.EndTime) != req.DurationMinutes {
		return fmt.Errorf("%w: interval length does not match durationMinutes", ErrInvalidInput)
	}

	if req.ClientNotes != nil && len(*req.ClientNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: clientNotes is too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(date time.Time, now time.Time, config *domain.ScheduleConfig) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if config.HasAdvanceBookingLimit() {
		maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, config.AdvanceBookingDays)

		dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

		if dateOnly.After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, config.AdvanceBookingDays)
		}
	}

	if config.IsBlocked(date) {
		return ErrDateBlocked
	}

	return nil
}

// validateBusinessHours проверяет, что интервал лежит внутри рабочих часов дня
func validateBusinessHours(day domain.DayHours, start, end types.TimeString) error {
	if !day.Enabled || day.OpenTime == nil || day.CloseTime == nil {
		return ErrDayClosed
	}

	if start.Minutes() < day.OpenTime.Minutes() || end.Minutes() > day.CloseTime.Minutes() {
		return ErrOutsideBusinessHours
	}

	return nil
}

// validateNotice проверяет, что до начала приёма остаётся не меньше minNoticeHours
func validateNotice(date time.Time, start types.TimeString, now time.Time, config *domain.ScheduleConfig) error {
	startAt := time.Date(date.Year(), date.Month(), date.Day(),
		start.Minutes()/60, start.Minutes()%60, 0, 0, now.Location())

	minAllowed := now.Add(time.Duration(config.MinNoticeMinutes()) * time.Minute)

	if startAt.Before(minAllowed) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, config.MinNoticeHours)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

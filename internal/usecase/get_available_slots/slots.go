package get_available_slots

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

// generateSlots генерирует все слоты дня по конфигурации расписания
// Чистая функция от (config, date, now): результат детерминирован и упорядочен
// по возрастанию времени
//
// Пустая последовательность возвращается для:
// - выключенного дня недели
// - полностью закрытой даты (blockedDates)
// - даты в прошлом и даты дальше advanceBookingDays
//
// Сетка строится от открытия до закрытия с шагом slotDuration, последний слот
// заканчивается не позже закрытия. Слоты, начинающиеся раньше абсолютного
// момента now + minNoticeHours, не попадают в выдачу: при notice period в
// несколько суток фильтр захватывает не только сегодняшнюю дату, и такой день
// схлопывается в пустую сетку целиком
func generateSlots(config *domain.ScheduleConfig, date time.Time, now time.Time) []domain.Slot {
	if isDateInPast(date, now) {
		return []domain.Slot{}
	}

	if config.HasAdvanceBookingLimit() && isDateBeyondLimit(date, now, config.AdvanceBookingDays) {
		return []domain.Slot{}
	}

	if config.IsBlocked(date) {
		return []domain.Slot{}
	}

	day := config.HoursForDate(date)
	if !day.Enabled || day.OpenTime == nil || day.CloseTime == nil {
		return []domain.Slot{}
	}

	openM := day.OpenTime.Minutes()
	closeM := day.CloseTime.Minutes()
	step := config.SlotDurationMinutes

	// Шаг 1: полная сетка от открытия до закрытия
	allSlots := make([]domain.Slot, 0, (closeM-openM)/step)
	for startM := openM; startM+step <= closeM; startM += step {
		slot, ok := slotFromMinutes(startM, startM+step)
		if !ok {
			break
		}
		allSlots = append(allSlots, slot)
	}

	// Шаг 2: скрываем слоты, нарушающие notice period
	// Сравнение идёт по абсолютному моменту начала слота, а не по минутам
	// внутри дня: notice period может быть длиннее суток
	minAllowed := now.Add(time.Duration(config.MinNoticeMinutes()) * time.Minute)

	availableSlots := make([]domain.Slot, 0, len(allSlots))
	for _, slot := range allSlots {
		slotStart := time.Date(date.Year(), date.Month(), date.Day(),
			slot.Start.Minutes()/60, slot.Start.Minutes()%60, 0, 0, now.Location())
		if !slotStart.Before(minAllowed) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots
}

// markAvailability размечает доступность каждого слота по существующим приёмам
// Возвращаются ВСЕ слоты, а не только свободные: клиенту нужна полная сетка
// с задизейбленными занятыми слотами
func markAvailability(slots []domain.Slot, existing []*domain.Appointment, bufferMinutes int) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, len(slots))

	for i, slot := range slots {
		result[i] = domain.AvailableSlot{
			Start:           slot.Start,
			End:             slot.End,
			DurationMinutes: slot.End.Minutes() - slot.Start.Minutes(),
			Available:       !domain.HasConflict(slot.Start, slot.End, existing, bufferMinutes, nil),
		}
	}

	return result
}

func slotFromMinutes(startM, endM int) (domain.Slot, bool) {
	start, err := types.NewTimeStringFromMinutes(startM)
	if err != nil {
		return domain.Slot{}, false
	}
	end, err := types.NewTimeStringFromMinutes(endM)
	if err != nil {
		return domain.Slot{}, false
	}
	return domain.Slot{Start: start, End: end}, true
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// isDateBeyondLimit проверяет, что дата дальше advanceBookingDays от сегодня
func isDateBeyondLimit(date, now time.Time, advanceBookingDays int) bool {
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.After(maxDate)
}

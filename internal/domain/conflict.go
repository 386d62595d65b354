package domain

import "github.com/arcana-platform/Arcana-SchedulingService/pkg/types"

// Overlaps проверяет пересечение двух полуоткрытых интервалов [start, end)
// на одной дате. Интервалы пересекаются, только если:
// - начало первого СТРОГО раньше конца второго И
// - конец первого СТРОГО позже начала второго
// Граничащие интервалы (конец одного == начало другого) НЕ пересекаются
//
// Примеры:
// - 09:00-09:30 и 09:30-10:00 → НЕТ пересечения (граничат)
// - 09:00-09:45 и 09:30-10:00 → ЕСТЬ пересечение (09:30-09:45)
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return overlapsMinutes(aStart.Minutes(), aEnd.Minutes(), bStart.Minutes(), bEnd.Minutes())
}

// overlapsMinutes то же сравнение в минутах от полуночи
// Буферный интервал может выходить за 23:59, поэтому внутри пакета
// сравнение идёт по минутам, а не по TimeString
func overlapsMinutes(aStartM, aEndM, bStartM, bEndM int) bool {
	return aStartM < bEndM && aEndM > bStartM
}

// HasConflict проверяет, пересекается ли интервал [start, end) хотя бы с одним
// существующим приёмом на ту же дату
//
// Единая точка правды для "свободно ли это время": используется и при
// разметке доступности слотов, и при валидации create/reschedule.
//
// Отменённые приёмы никогда не конфликтуют. Приём с ID, равным excludeID,
// пропускается (самоисключение при переносе). bufferMinutes добавляет
// технологический перерыв после каждого занятого интервала
func HasConflict(start, end types.TimeString, existing []*Appointment, bufferMinutes int, excludeID *int64) bool {
	startM := start.Minutes()
	endM := end.Minutes()

	for _, appt := range existing {
		if appt.IsCancelled() {
			continue
		}
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}

		apptStart := appt.StartTime.Minutes()
		apptEnd := appt.EndTime.Minutes() + bufferMinutes

		if overlapsMinutes(startM, endM, apptStart, apptEnd) {
			return true
		}
	}

	return false
}

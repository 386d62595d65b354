package domain

import "github.com/arcana-platform/Arcana-SchedulingService/pkg/types"

// Slot кандидат на бронирование: полуоткрытый интервал [Start, End) на дате
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}

// AvailableSlot represents a candidate slot with its availability flag.
// Занятые слоты тоже возвращаются, чтобы клиент мог отрисовать полную сетку
type AvailableSlot struct {
	Start           types.TimeString
	End             types.TimeString
	DurationMinutes int
	Available       bool
}

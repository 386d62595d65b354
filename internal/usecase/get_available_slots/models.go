package get_available_slots

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	Date time.Time // Дата, на которую запрашивается сетка слотов (без времени)
}

// Response модель ответа с полной сеткой слотов на дату
type Response struct {
	Date  time.Time // Дата, на которую запрашивались слоты
	Slots []Slot    // Все слоты дня, включая занятые
}

// Slot модель временного слота
type Slot struct {
	Start           types.TimeString // Время начала слота (например, "10:00")
	End             types.TimeString // Время конца слота
	DurationMinutes int              // Длительность слота в минутах
	Available       bool             // Свободен ли слот для бронирования
}

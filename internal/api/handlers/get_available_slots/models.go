package get_available_slots

import (
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	getAvailableSlots "github.com/arcana-platform/Arcana-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Start           string `json:"start"` // "10:00"
	End             string `json:"end"`   // "10:30"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// AvailableSlotsResponse HTTP модель сетки слотов на дату
type AvailableSlotsResponse struct {
	Date  string         `json:"date"` // "2025-10-15"
	Slots []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Start:           slot.Start.String(),
			End:             slot.End.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		})
	}

	return out
}

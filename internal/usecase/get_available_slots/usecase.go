package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	scheduleRepo "github.com/arcana-platform/Arcana-SchedulingService/internal/infra/storage/schedule"
)

// UseCase use case для получения сетки слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailableSlots: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Загружаем конфигурацию расписания
	config, err := uc.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailableSlots: schedule config is not set up")
			return nil, fmt.Errorf("%w: schedule config not found", ErrInternal)
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// 3. Текущее время в таймзоне расписания
	now := uc.timeProvider.Now().In(config.Location())

	// 4. Генерируем сетку слотов
	slots := generateSlots(config, req.Date, now)
	if len(slots) == 0 {
		uc.logger.Info("GetAvailableSlots: no bookable slots for %s", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	// 5. Загружаем приёмы на эту дату, кроме отменённых
	// Только отмена освобождает интервал: завершённые и no-show занимают его
	appointments, err := uc.appointmentRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Размечаем доступность каждого слота
	marked := markAvailability(slots, appointments, config.BufferMinutes)

	result := make([]Slot, len(marked))
	for i, s := range marked {
		result[i] = Slot{
			Start:           s.Start,
			End:             s.End,
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s",
		len(result), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date,
		Slots: result,
	}, nil
}

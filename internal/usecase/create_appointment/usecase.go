package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	scheduleRepo "github.com/arcana-platform/Arcana-SchedulingService/internal/infra/storage/schedule"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/integrations/notifyservice"
)

// UseCase use case для создания приёма
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания приёма
// Проверка конфликтов и вставка идут в одной сериализуемой транзакции:
// два конкурентных бронирования на пересекающиеся интервалы не могут оба
// пройти проверку и закоммититься
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, date=%s, time=%s-%s",
		req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем конфигурацию расписания
		config, err := uc.scheduleRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
				uc.logger.Error("CreateAppointment: schedule config is not set up")
				return fmt.Errorf("%w: schedule config not found", ErrInternal)
			}
			uc.logger.Error("CreateAppointment: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}

		// 2.2. Текущее время в таймзоне расписания
		now := uc.timeProvider.Now().In(config.Location())

		// 2.3. Валидация даты: прошлое, advanceBookingDays, закрытые даты
		if err := validateDate(req.Date, now, config); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		// 2.4. Интервал должен лежать внутри рабочих часов дня
		if err := validateBusinessHours(config.HoursForDate(req.Date), req.StartTime, req.EndTime); err != nil {
			uc.logger.Warn("CreateAppointment: business hours validation failed: %v", err)
			return err
		}

		// 2.5. Notice period
		if err := validateNotice(req.Date, req.StartTime, now, config); err != nil {
			uc.logger.Warn("CreateAppointment: notice validation failed: %v", err)
			return err
		}

		// 2.6. Загружаем приёмы на эту дату с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 2.7. Проверяем конфликт интервалов
		if domain.HasConflict(req.StartTime, req.EndTime, existing, config.BufferMinutes, nil) {
			uc.logger.Warn("CreateAppointment: interval %s-%s on %s conflicts with an existing appointment",
				req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat))
			return ErrSlotConflict
		}

		// 2.8. Сохраняем приём в статусе scheduled
		appt := &domain.Appointment{
			ClientID:        req.ClientID,
			OrderItemID:     req.OrderItemID,
			ScheduledDate:   req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusScheduled,
			ClientNotes:     req.ClientNotes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 3. Уведомляем клиента (fire-and-forget, после коммита)
	uc.notifier.NotifyAsync(notifyservice.EventCreated, result)

	return FromDomain(result), nil
}

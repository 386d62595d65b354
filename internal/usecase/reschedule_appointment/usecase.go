package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	appointmentRepo "github.com/arcana-platform/Arcana-SchedulingService/internal/infra/storage/appointment"
	scheduleRepo "github.com/arcana-platform/Arcana-SchedulingService/internal/infra/storage/schedule"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/integrations/notifyservice"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

// UseCase use case для переноса приёма на новый интервал
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

// Execute выполняет use case переноса приёма
// Конфликт проверяется тем же предикатом, что и при создании, с исключением
// собственного ID приёма: перенос на свой же интервал всегда проходит.
// Статус после переноса сбрасывается в scheduled, подтверждение снимается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, date=%s, time=%s-%s",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	durationMinutes := req.StartTime.MinutesUntil(req.EndTime)

	var result *domain.Appointment

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем приём
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Терминальные приёмы не переносятся
		if !appt.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d is in terminal status=%s",
				appt.ID, appt.Status)
			return ErrTerminalState
		}

		// 2.3. Загружаем конфигурацию расписания
		config, err := uc.scheduleRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
				uc.logger.Error("RescheduleAppointment: schedule config is not set up")
				return fmt.Errorf("%w: schedule config not found", ErrInternal)
			}
			uc.logger.Error("RescheduleAppointment: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}

		now := uc.timeProvider.Now().In(config.Location())

		// 2.4. Валидация новой даты
		// Notice period здесь не проверяется: перенос - административное
		// действие, и админ может двигать приёмы на ближайшие слоты
		if err := validateDate(req.Date, now, config); err != nil {
			uc.logger.Warn("RescheduleAppointment: date validation failed: %v", err)
			return err
		}

		if err := validateBusinessHours(config.HoursForDate(req.Date), req.StartTime, req.EndTime); err != nil {
			uc.logger.Warn("RescheduleAppointment: business hours validation failed: %v", err)
			return err
		}

		// 2.5. Загружаем приёмы на новую дату с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 2.6. Проверяем конфликт, исключая собственный ID
		if domain.HasConflict(req.StartTime, req.EndTime, existing, config.BufferMinutes, &appt.ID) {
			uc.logger.Warn("RescheduleAppointment: interval %s-%s on %s conflicts with an existing appointment",
				req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat))
			return ErrSlotConflict
		}

		// 2.7. Переносим приём
		if err := uc.appointmentRepo.Reschedule(txCtx, appt.ID, req.Date, req.StartTime, req.EndTime, durationMinutes); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to reschedule appointment: %v", ErrInternal, err)
		}

		appt.ScheduledDate = req.Date
		appt.StartTime = req.StartTime
		appt.EndTime = req.EndTime
		appt.DurationMinutes = durationMinutes
		appt.Status = domain.StatusScheduled
		appt.ConfirmedAt = nil

		result = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d", result.ID)

	// 3. Уведомляем клиента о переносе (fire-and-forget, после коммита)
	uc.notifier.NotifyAsync(notifyservice.EventRescheduled, result)

	return FromDomain(result), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
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

	return nil
}

// validateDate проверяет, что дата подходит для переноса
func validateDate(date time.Time, now time.Time, config *domain.ScheduleConfig) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
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

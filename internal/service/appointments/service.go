package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	appointmentRepo "github.com/arcana-platform/Arcana-SchedulingService/internal/infra/storage/appointment"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/integrations/notifyservice"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/appointments/models"
)

// Service сервис для работы с приёмами
type Service struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	notifier        Notifier
	txManager       TxManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	notifier Notifier,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает приём по ID
// Клиент видит только свои приёмы, админ - любые
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64, role domain.ActorRole) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for actor=%d role=%s", id, actorID, role)

	appt, err := s.getAppointment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !role.IsAdmin() && appt.ClientID != actorID {
		s.logger.Warn("GetByID: access denied for actor=%d to appointment id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetClientAppointments получает историю приёмов клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appts, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%d", len(appts), req.ClientID)
	return models.FromDomainAppointmentList(appts), nil
}

// List получает приёмы с гибкой фильтрацией по клиенту, периоду и статусу
// Используется админкой для календаря и истории
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments, client=%v, from=%v, to=%v, status=%v, includeInactive=%t",
		req.ClientID, req.DateFrom, req.DateTo, req.Status, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appts))
	return models.FromDomainAppointmentList(appts), nil
}

// Cancel отменяет приём
// Клиент может отменить только свой приём и только раньше, чем за
// minNoticeHours до начала. Админ отменяет любой приём без ограничения
// по времени - асимметрия сознательная, это политика, а не баг
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by actor=%d role=%s", id, req.ActorID, req.ActorRole)

	// Проверка статуса и отмена идут в одной транзакции: GetByID внутри
	// транзакции блокирует строку, и конкурентный переход статуса не сможет
	// вклиниться между проверкой и записью
	var appt *domain.Appointment
	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		appt, err = s.getAppointment(txCtx, id, "Cancel")
		if err != nil {
			return err
		}

		if !appt.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
			return ErrCannotCancel
		}

		if !req.ActorRole.IsAdmin() {
			if appt.ClientID != req.ActorID {
				s.logger.Warn("Cancel: access denied for actor=%d to appointment id=%d", req.ActorID, id)
				return ErrAccessDenied
			}

			if err := s.checkCancellationNotice(txCtx, appt); err != nil {
				return err
			}
		}

		if err := s.appointmentRepo.Cancel(txCtx, id, req.CancellationReason); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%d not found during cancellation", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	now := s.timeProvider.Now()
	appt.Status = domain.StatusCancelled
	appt.CancelledAt = &now
	appt.CancellationReason = req.CancellationReason

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)

	// Уведомляем клиента об отмене (fire-and-forget)
	s.notifier.NotifyAsync(notifyservice.EventCancelled, appt)

	return models.FromDomainAppointment(appt), nil
}

// UpdateStatus обновляет статус приёма по таблице переходов
// Доступно только админу. Любой переход, отсутствующий в таблице,
// отклоняется, включая любые переходы из терминальных статусов
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Проверка перехода и запись статуса идут в одной транзакции, чтобы два
	// конкурентных перехода не перезаписали друг друга в обход таблицы
	var appt *domain.Appointment
	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		appt, err = s.getAppointment(txCtx, id, "UpdateStatus")
		if err != nil {
			return err
		}

		if !appt.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d",
				appt.Status, newStatus, id)
			return ErrInvalidTransition
		}

		// no-show можно выставить только после того, как время приёма прошло
		if newStatus == domain.StatusNoShow {
			if err := s.checkStarted(txCtx, appt); err != nil {
				return err
			}
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("UpdateStatus: appointment id=%d not found during update", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	now := s.timeProvider.Now()
	appt.Status = newStatus
	switch newStatus {
	case domain.StatusConfirmed:
		appt.ConfirmedAt = &now
	case domain.StatusCancelled:
		appt.CancelledAt = &now
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, newStatus)

	if newStatus == domain.StatusCancelled {
		s.notifier.NotifyAsync(notifyservice.EventCancelled, appt)
	}

	return models.FromDomainAppointment(appt), nil
}

// SendReminder отправляет клиенту напоминание о приёме
// Только для активных приёмов
func (s *Service) SendReminder(ctx context.Context, id int64) error {
	s.logger.Info("SendReminder: sending reminder for appointment id=%d", id)

	appt, err := s.getAppointment(ctx, id, "SendReminder")
	if err != nil {
		return err
	}

	if appt.IsTerminal() {
		s.logger.Warn("SendReminder: appointment id=%d is in terminal status=%s", id, appt.Status)
		return ErrInvalidTransition
	}

	s.notifier.NotifyAsync(notifyservice.EventReminder, appt)
	return nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, id int64, op string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// checkCancellationNotice проверяет notice period при отмене клиентом
func (s *Service) checkCancellationNotice(ctx context.Context, appt *domain.Appointment) error {
	config, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		s.logger.Error("Cancel: failed to get schedule config: %v", err)
		return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	loc := config.Location()
	now := s.timeProvider.Now().In(loc)
	startAt := appt.StartsAt(loc)

	if now.Add(time.Duration(config.MinNoticeMinutes()) * time.Minute).After(startAt) {
		s.logger.Warn("Cancel: too late to cancel appointment id=%d, starts at %s", appt.ID, startAt)
		return ErrTooLateToCancel
	}

	return nil
}

// checkStarted проверяет, что время начала приёма уже прошло
func (s *Service) checkStarted(ctx context.Context, appt *domain.Appointment) error {
	config, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to get schedule config: %v", err)
		return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	loc := config.Location()
	now := s.timeProvider.Now().In(loc)
	startAt := appt.StartsAt(loc)

	if now.Before(startAt) {
		s.logger.Warn("UpdateStatus: appointment id=%d has not started yet (starts at %s)", appt.ID, startAt)
		return ErrNotYetStarted
	}

	return nil
}

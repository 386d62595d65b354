package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	scheduleRepo "github.com/arcana-platform/Arcana-SchedulingService/internal/infra/storage/schedule"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/schedule/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TxManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get возвращает текущую конфигурацию расписания
func (s *Service) Get(ctx context.Context) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("Get: fetching schedule config")

	config, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Error("Get: schedule config not found")
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// Update полностью заменяет конфигурацию расписания
// Часы, политики и список заблокированных дат обновляются атомарно
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleConfigRequest) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("Update: updating schedule config")

	config, err := req.ToDomainConfig()
	if err != nil {
		s.logger.Warn("Update: failed to parse config: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := validateConfig(config); err != nil {
		s.logger.Warn("Update: config validation failed: %v", err)
		return nil, err
	}

	// Обновляем конфигурацию в одной транзакции: политики, часы и
	// заблокированные даты должны замениться атомарно
	var updated *domain.ScheduleConfig
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.scheduleRepo.Get(ctx)
		if err != nil {
			return err
		}
		config.ID = current.ID

		updated, err = s.scheduleRepo.Update(ctx, config)
		return err
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Error("Update: schedule config not found")
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated schedule config")
	return models.FromDomainConfig(updated), nil
}

// validateConfig проверяет бизнес-инварианты конфигурации
func validateConfig(config *domain.ScheduleConfig) error {
	if config.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		config.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidConfig, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if config.BufferMinutes < domain.MinBufferMinutes ||
		config.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer must be between %d and %d minutes",
			ErrInvalidConfig, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if config.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		config.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between %d and %d",
			ErrInvalidConfig, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if config.MinNoticeHours < domain.MinMinNoticeHours ||
		config.MinNoticeHours > domain.MaxMinNoticeHours {
		return fmt.Errorf("%w: min notice hours must be between %d and %d",
			ErrInvalidConfig, domain.MinMinNoticeHours, domain.MaxMinNoticeHours)
	}

	if config.Timezone != "" {
		if _, err := time.LoadLocation(config.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, config.Timezone)
		}
	}

	days := []struct {
		name  string
		hours domain.DayHours
	}{
		{"monday", config.Hours.Monday},
		{"tuesday", config.Hours.Tuesday},
		{"wednesday", config.Hours.Wednesday},
		{"thursday", config.Hours.Thursday},
		{"friday", config.Hours.Friday},
		{"saturday", config.Hours.Saturday},
		{"sunday", config.Hours.Sunday},
	}

	for _, day := range days {
		if !day.hours.Enabled {
			continue
		}

		if day.hours.OpenTime == nil || day.hours.CloseTime == nil {
			return fmt.Errorf("%w: %s is enabled but hours are not set", ErrInvalidConfig, day.name)
		}

		if err := day.hours.OpenTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s open time: %v", ErrInvalidConfig, day.name, err)
		}
		if err := day.hours.CloseTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s close time: %v", ErrInvalidConfig, day.name, err)
		}

		if !day.hours.OpenTime.IsBefore(*day.hours.CloseTime) {
			return fmt.Errorf("%w: %s open time must be before close time", ErrInvalidConfig, day.name)
		}
	}

	return nil
}

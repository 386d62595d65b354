package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/dbmetrics"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/psqlbuilder"
	"github.com/arcana-platform/Arcana-SchedulingService/pkg/types"
)

// Repository репозиторий конфигурации расписания
// Конфигурация хранится в трёх таблицах:
// - schedule_config: единственная активная строка с политиками бронирования
// - schedule_hours: семь строк с рабочими часами по дням недели
// - blocked_dates: полностью закрытые даты
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get загружает активную конфигурацию расписания целиком
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slot_duration_minutes",
		"buffer_minutes",
		"advance_booking_days",
		"min_notice_hours",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("schedule_config").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.SlotDurationMinutes,
		&config.BufferMinutes,
		&config.AdvanceBookingDays,
		&config.MinNoticeHours,
		&config.Timezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	if config.Hours, err = r.getHours(ctx, executor, config.ID); err != nil {
		return nil, err
	}
	if config.BlockedDates, err = r.getBlockedDates(ctx, executor, config.ID); err != nil {
		return nil, err
	}

	return &config, nil
}

// Update заменяет конфигурацию расписания
// Должен вызываться внутри транзакции: политики, рабочие часы и закрытые даты
// обновляются несколькими запросами
func (r *Repository) Update(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_config").
		Set("slot_duration_minutes", config.SlotDurationMinutes).
		Set("buffer_minutes", config.BufferMinutes).
		Set("advance_booking_days", config.AdvanceBookingDays).
		Set("min_notice_hours", config.MinNoticeHours).
		Set("timezone", config.Timezone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": config.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	config.UpdatedAt = updatedAt.Time

	if err := r.replaceHours(ctx, executor, config.ID, config.Hours); err != nil {
		return nil, err
	}
	if err := r.replaceBlockedDates(ctx, executor, config.ID, config.BlockedDates); err != nil {
		return nil, err
	}

	return config, nil
}

func (r *Repository) getHours(ctx context.Context, executor dbmetrics.DBExecutor, configID int64) (domain.WeeklyHours, error) {
	var hours domain.WeeklyHours

	query, args, err := psqlbuilder.Select("weekday", "enabled", "open_time", "close_time").
		From("schedule_hours").
		Where(squirrel.Eq{"config_id": configID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return hours, fmt.Errorf("%w: getHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return hours, fmt.Errorf("%w: getHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var day domain.DayHours
		var openTime, closeTime sql.NullString

		if err := rows.Scan(&weekday, &day.Enabled, &openTime, &closeTime); err != nil {
			return hours, fmt.Errorf("%w: getHours - scan row: %v", ErrScanRow, err)
		}

		if day.OpenTime, err = toTimeString(openTime); err != nil {
			return hours, fmt.Errorf("%w: getHours - parse open_time: %v", ErrScanRow, err)
		}
		if day.CloseTime, err = toTimeString(closeTime); err != nil {
			return hours, fmt.Errorf("%w: getHours - parse close_time: %v", ErrScanRow, err)
		}

		setWeekday(&hours, time.Weekday(weekday), day)
	}

	if err := rows.Err(); err != nil {
		return hours, fmt.Errorf("%w: getHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

func (r *Repository) replaceHours(ctx context.Context, executor dbmetrics.DBExecutor, configID int64, hours domain.WeeklyHours) error {
	query, args, err := psqlbuilder.Delete("schedule_hours").
		Where(squirrel.Eq{"config_id": configID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceHours - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceHours - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("schedule_hours").
		Columns("config_id", "weekday", "enabled", "open_time", "close_time")

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day := hours.ForWeekday(weekday)
		insertBuilder = insertBuilder.Values(configID, int(weekday), day.Enabled, day.OpenTime, day.CloseTime)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceHours - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getBlockedDates(ctx context.Context, executor dbmetrics.DBExecutor, configID int64) ([]time.Time, error) {
	query, args, err := psqlbuilder.Select("blocked_date").
		From("blocked_dates").
		Where(squirrel.Eq{"config_id": configID}).
		OrderBy("blocked_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: getBlockedDates - scan row: %v", ErrScanRow, err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

func (r *Repository) replaceBlockedDates(ctx context.Context, executor dbmetrics.DBExecutor, configID int64, dates []time.Time) error {
	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"config_id": configID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceBlockedDates - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceBlockedDates - execute delete: %v", ErrExecQuery, err)
	}

	if len(dates) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("blocked_dates").
		Columns("config_id", "blocked_date")
	for _, date := range dates {
		insertBuilder = insertBuilder.Values(configID, date)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceBlockedDates - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceBlockedDates - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func setWeekday(hours *domain.WeeklyHours, weekday time.Weekday, day domain.DayHours) {
	switch weekday {
	case time.Monday:
		hours.Monday = day
	case time.Tuesday:
		hours.Tuesday = day
	case time.Wednesday:
		hours.Wednesday = day
	case time.Thursday:
		hours.Thursday = day
	case time.Friday:
		hours.Friday = day
	case time.Saturday:
		hours.Saturday = day
	case time.Sunday:
		hours.Sunday = day
	}
}

func toTimeString(v sql.NullString) (*types.TimeString, error) {
	if !v.Valid {
		return nil, nil
	}
	var ts types.TimeString
	if err := ts.Scan(v.String); err != nil {
		return nil, err
	}
	return &ts, nil
}

package schedule

import (
	"context"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
)

// ScheduleRepository репозиторий конфигурации расписания
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
	Update(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// TxManager менеджер транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

package get_appointment

import (
	"context"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id int64, actorID int64, role domain.ActorRole) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_schedule_config

import (
	"errors"
	"net/http"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/api/handlers"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/schedule"
)

const msgConfigNotFound = "конфигурация расписания не найдена"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.Get(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrConfigNotFound):
			h.logger.Warn("GET /schedule/config - Config not found")
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("GET /schedule/config - Failed to get config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/config - Config retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, config)
}

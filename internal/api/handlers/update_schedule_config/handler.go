package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/api/handlers"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/schedule"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректная конфигурация расписания"
	msgConfigNotFound     = "конфигурация расписания не найдена"
)

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

// Handle PUT /api/v1/admin/schedule/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req models.UpdateScheduleConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем конфигурацию
	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidConfig):
			h.logger.Warn("PUT /admin/schedule/config - Invalid config: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, schedule.ErrConfigNotFound):
			h.logger.Warn("PUT /admin/schedule/config - Config not found")
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("PUT /admin/schedule/config - Failed to update config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/schedule/config - Config updated successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}

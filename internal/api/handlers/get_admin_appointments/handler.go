package get_admin_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/api/handlers"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/appointments"
	"github.com/arcana-platform/Arcana-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgInvalidFilter   = "некорректные параметры фильтра"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments
// Query params: clientId, dateFrom, dateTo, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceReq := &models.ListAppointmentsRequest{
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if raw := query.Get("clientId"); raw != "" {
		clientID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid client ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClientID)
			return
		}
		serviceReq.ClientID = &clientID
	}

	if raw := query.Get("dateFrom"); raw != "" {
		serviceReq.DateFrom = &raw
	}
	if raw := query.Get("dateTo"); raw != "" {
		serviceReq.DateTo = &raw
	}
	if raw := query.Get("status"); raw != "" {
		serviceReq.Status = &raw
	}

	// Получаем список приёмов
	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Appointments retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

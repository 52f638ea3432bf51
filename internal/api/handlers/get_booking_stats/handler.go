package get_booking_stats

import (
	"net/http"

	"github.com/logoped-app/appointment-service/internal/api/handlers"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("GET /stats - Failed to get stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stats - Stats retrieved successfully: total=%d, active=%d",
		result.TotalAppointments, result.ActiveAppointments)
	handlers.RespondJSON(w, http.StatusOK, result)
}

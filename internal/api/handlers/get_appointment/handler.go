package get_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/logoped-app/appointment-service/internal/api/handlers"
	"github.com/logoped-app/appointment-service/internal/service/appointments"
)

const (
	msgMissingCode         = "код бронирования обязателен"
	msgAppointmentNotFound = "запись с таким кодом не найдена"
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

// Handle GET /api/v1/appointments/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]
	if code == "" {
		h.logger.Warn("GET /appointments/{code} - Missing booking code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	result, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{code} - Appointment not found: code=%s", code)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments/{code} - Invalid booking code: %v", err)
			handlers.RespondBadRequest(w, msgMissingCode)

		default:
			h.logger.Error("GET /appointments/{code} - Failed to get appointment: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{code} - Appointment retrieved successfully: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/logoped-app/appointment-service/internal/api/handlers"
	"github.com/logoped-app/appointment-service/internal/service/appointments"
)

const (
	msgMissingCode         = "код бронирования обязателен"
	msgAppointmentNotFound = "активная запись с таким кодом не найдена"
	msgAlreadyOccurred     = "нельзя отменить запись, которая уже прошла"
	msgCancelled           = "запись успешно отменена"
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

// Handle PATCH /api/v1/appointments/{code}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]
	if code == "" {
		h.logger.Warn("PATCH /appointments/{code}/cancel - Missing booking code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	result, err := h.service.Cancel(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{code}/cancel - Active appointment not found: code=%s", code)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAlreadyOccurred):
			h.logger.Warn("PATCH /appointments/{code}/cancel - Appointment already occurred: code=%s", code)
			handlers.RespondBadRequest(w, msgAlreadyOccurred)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{code}/cancel - Invalid booking code: %v", err)
			handlers.RespondBadRequest(w, msgMissingCode)

		default:
			h.logger.Error("PATCH /appointments/{code}/cancel - Failed to cancel: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{code}/cancel - Appointment cancelled successfully: id=%d", result.ID)
	handlers.RespondJSONMessage(w, http.StatusOK, msgCancelled, result)
}

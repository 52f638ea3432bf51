package get_fully_booked_dates

import (
	"net/http"

	"github.com/logoped-app/appointment-service/internal/api/handlers"
)

type Handler struct {
	useCase GetFullyBookedDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetFullyBookedDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/dates/fully-booked
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /dates/fully-booked - Failed to get dates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /dates/fully-booked - Dates retrieved successfully: count=%d", len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, response)
}

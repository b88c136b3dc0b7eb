package list_availability

import (
	"net/http"
	"time"

	"github.com/condoreservas/reservation-service/internal/api/handlers"
	"github.com/condoreservas/reservation-service/internal/domain"
	listAvailability "github.com/condoreservas/reservation-service/internal/usecase/list_availability"
)

const msgInvalidDate = "parâmetro 'date' inválido, formato esperado YYYY-MM-DD"

type Handler struct {
	useCase ListAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ListAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/availability?date=2026-08-29
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /spaces/availability - Invalid 'date' parameter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listAvailability.Request{Date: date})
	if err != nil {
		h.logger.Error("GET /spaces/availability - Failed to list availability: date=%s, error=%v",
			date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

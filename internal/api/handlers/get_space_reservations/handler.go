package get_space_reservations

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/condoreservas/reservation-service/internal/api/handlers"
)

const msgInvalidSpaceID = "ID do espaço inválido"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/reservations - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	result, err := h.service.GetSpaceReservations(r.Context(), spaceID)
	if err != nil {
		h.logger.Error("GET /spaces/{id}/reservations - Failed to list reservations: space_id=%d, error=%v",
			spaceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package update_reservation_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/condoreservas/reservation-service/internal/api/handlers"
	"github.com/condoreservas/reservation-service/internal/api/middleware"
	"github.com/condoreservas/reservation-service/internal/service/reservations"
	"github.com/condoreservas/reservation-service/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "ID da reserva inválido"
	msgInvalidRequestBody   = "corpo da requisição inválido"
	msgInvalidStatus        = "status de reserva inválido"
	msgIllegalTransition    = "transição de status não permitida"
	msgNotFound             = "Reserva não encontrada."
	msgMissingUserID        = "ID do usuário ausente"
)

// StatusRequest HTTP request model
type StatusRequest struct {
	Status string `json:"status"`
}

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

// Handle PUT /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /reservations/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req StatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateStatus(r.Context(), reservationID, &models.UpdateStatusRequest{
		ActorUserID: userID,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id}/status - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("PUT /reservations/{id}/status - Invalid status: reservation_id=%d, status=%q",
				reservationID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrIllegalTransition):
			h.logger.Warn("PUT /reservations/{id}/status - Illegal transition: reservation_id=%d, status=%q",
				reservationID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgIllegalTransition)

		default:
			h.logger.Error("PUT /reservations/{id}/status - Failed to update status: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id}/status - Status updated: reservation_id=%d, status=%s, user_id=%d",
		reservationID, req.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

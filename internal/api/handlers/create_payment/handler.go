package create_payment

import (
	"errors"
	"net/http"

	"github.com/condoreservas/reservation-service/internal/api/handlers"
	"github.com/condoreservas/reservation-service/internal/service/payments"
	"github.com/condoreservas/reservation-service/internal/service/payments/models"
)

const (
	msgInvalidRequestBody  = "corpo da requisição inválido"
	msgReservationNotFound = "Reserva não encontrada."
	msgPaymentNotRequired  = "Esta reserva não requer pagamento."
	msgAlreadyConfirmed    = "a reserva já possui um pagamento confirmado"
	msgInvalidInput        = "dados do pagamento inválidos"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrReservationNotFound):
			h.logger.Warn("POST /payments - Reservation not found: reservation_id=%d", req.ReservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, payments.ErrPaymentNotRequired):
			h.logger.Warn("POST /payments - Payment not required: reservation_id=%d", req.ReservationID)
			handlers.RespondBadRequest(w, msgPaymentNotRequired)

		case errors.Is(err, payments.ErrPaymentAlreadyConfirmed):
			h.logger.Warn("POST /payments - Already confirmed: reservation_id=%d", req.ReservationID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyConfirmed)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments - Invalid input: reservation_id=%d", req.ReservationID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /payments - Failed to create payment: reservation_id=%d, error=%v",
				req.ReservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments - Payment created: payment_id=%d, reservation_id=%d", result.ID, req.ReservationID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

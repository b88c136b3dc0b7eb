package update_payment_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/condoreservas/reservation-service/internal/api/handlers"
	"github.com/condoreservas/reservation-service/internal/service/payments"
	"github.com/condoreservas/reservation-service/internal/service/payments/models"
)

const (
	msgInvalidPaymentID   = "ID do pagamento inválido"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidStatus      = "status de pagamento inválido"
	msgNotFound           = "Pagamento não encontrado."
	msgAlreadyConfirmed   = "a reserva já possui um pagamento confirmado"
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

// Handle PUT /api/v1/payments/{paymentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	paymentID, err := strconv.ParseInt(vars["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /payments/{id}/status - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /payments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ApplyStatus(r.Context(), paymentID, &req); err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("PUT /payments/{id}/status - Not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrInvalidStatus):
			h.logger.Warn("PUT /payments/{id}/status - Invalid status: payment_id=%d, status=%q",
				paymentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, payments.ErrPaymentAlreadyConfirmed):
			h.logger.Warn("PUT /payments/{id}/status - Already confirmed: payment_id=%d", paymentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyConfirmed)

		default:
			h.logger.Error("PUT /payments/{id}/status - Failed to update status: payment_id=%d, error=%v",
				paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /payments/{id}/status - Status updated: payment_id=%d, status=%s", paymentID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/condoreservas/reservation-service/internal/api/handlers"
	"github.com/condoreservas/reservation-service/internal/service/payments"
	"github.com/condoreservas/reservation-service/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "Dados de webhook inválidos."
	msgInvalidCode        = "Código PIX inválido."
	msgPaymentNotFound    = "Pagamento não encontrado."
	msgInvalidStatus      = "status de pagamento inválido"
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

// Handle POST /api/v1/payments/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid reference code: reference=%q", req.ReferenceCode)
			handlers.RespondBadRequest(w, msgInvalidCode)

		case errors.Is(err, payments.ErrInvalidStatus):
			h.logger.Warn("POST /payments/webhook - Invalid status: status=%q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/webhook - Payment not found: reference=%q", req.ReferenceCode)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		default:
			h.logger.Error("POST /payments/webhook - Failed to process event: reference=%q, error=%v",
				req.ReferenceCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Event processed: reference=%s, status=%s", req.ReferenceCode, req.Status)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

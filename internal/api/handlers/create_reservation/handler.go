package create_reservation

import (
	"errors"
	"net/http"

	"github.com/condoreservas/reservation-service/internal/api/handlers"
	"github.com/condoreservas/reservation-service/internal/api/middleware"
	createReservation "github.com/condoreservas/reservation-service/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidTimestamps  = "datas inválidas, formato esperado RFC3339"
	msgMissingUserID      = "ID do usuário ausente"
	msgSlotConflict       = "o horário escolhido já está reservado"
	msgSpaceNotFound      = "Espaço não encontrado."
	msgUserNotFound       = "Usuário não encontrado. É necessário completar o cadastro."
	msgInvalidInterval    = "intervalo de datas inválido"
	msgDurationTooShort   = "duração abaixo do mínimo permitido para o espaço"
	msgDurationTooLong    = "duração acima do máximo permitido para o espaço"
	msgUnknownAddOn       = "item adicional não disponível para o espaço"
	msgInvalidInput       = "dados da reserva inválidos"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrSpaceNotFound):
			h.logger.Warn("POST /reservations - Space not found: space_id=%d", req.SpaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Invalid interval: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createReservation.ErrDurationTooShort):
			h.logger.Warn("POST /reservations - Duration too short: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondBadRequest(w, msgDurationTooShort)

		case errors.Is(err, createReservation.ErrDurationTooLong):
			h.logger.Warn("POST /reservations - Duration too long: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondBadRequest(w, msgDurationTooLong)

		case errors.Is(err, createReservation.ErrUnknownAddOn):
			h.logger.Warn("POST /reservations - Unknown add-on: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondBadRequest(w, msgUnknownAddOn)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, space_id=%d, error=%v",
				userID, req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, space_id=%d, status=%s",
		result.ID, userID, req.SpaceID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

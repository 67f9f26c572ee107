package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/pkg/logger"
	"github.com/frontandrew/carrent/internal/usecase/reservation"
	"github.com/google/uuid"
)

// ReservationService определяет интерфейс для сервиса броней
type ReservationService interface {
	ListReservations(ctx context.Context, carID uuid.UUID) ([]*domain.Reservation, error)
	GetReservation(ctx context.Context, carID, id uuid.UUID) (*domain.Reservation, error)
	CreateReservation(ctx context.Context, carID uuid.UUID, in reservation.ReservationInput) (*domain.Reservation, error)
	UpdateReservation(ctx context.Context, carID, id uuid.UUID, in reservation.ReservationInput) (*domain.Reservation, error)
	PatchReservation(ctx context.Context, carID, id uuid.UUID, patch reservation.ReservationPatch) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, carID, id uuid.UUID) error
}

// ReservationHandler обрабатывает запросы связанные с бронями автомобиля
type ReservationHandler struct {
	reservationService ReservationService
	logger             logger.Logger
}

// NewReservationHandler создает новый handler
func NewReservationHandler(reservationService ReservationService, logger logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		logger:             logger,
	}
}

// ListReservations возвращает брони автомобиля
// GET /api/car/:id/reservations
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	carID, err := getPathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid car ID")
		return
	}

	list, err := h.reservationService.ListReservations(r.Context(), carID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list reservations")
		return
	}

	respondData(w, http.StatusOK, newMiniReservationListResponse(list))
}

// CreateReservation создает бронь автомобиля
// POST /api/car/:id/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	carID, err := getPathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid car ID")
		return
	}

	var req ReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := validateRequest(&req, true); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.reservationService.CreateReservation(r.Context(), carID, in)
	if err != nil {
		respondServiceError(w, h.logger, err, "create reservation")
		return
	}

	respondData(w, http.StatusCreated, newReservationResponse(created))
}

// GetReservation возвращает бронь с данными автомобиля
// GET /api/car/:id/reservations/:rid
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	carID, id, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	found, err := h.reservationService.GetReservation(r.Context(), carID, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get reservation")
		return
	}

	respondData(w, http.StatusOK, newReservationWithDetailsResponse(found))
}

// UpdateReservation полностью заменяет бронь
// PUT /api/car/:id/reservations/:rid
func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// PatchReservation обновляет переданные поля брони
// PATCH /api/car/:id/reservations/:rid
func (h *ReservationHandler) PatchReservation(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *ReservationHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	carID, id, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	var req ReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := validateRequest(&req, full); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	var updated *domain.Reservation
	if full {
		in, err := req.toInput()
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err = h.reservationService.UpdateReservation(r.Context(), carID, id, in)
		if err != nil {
			respondServiceError(w, h.logger, err, "update reservation")
			return
		}
	} else {
		patch, err := req.toPatch()
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err = h.reservationService.PatchReservation(r.Context(), carID, id, patch)
		if err != nil {
			respondServiceError(w, h.logger, err, "update reservation")
			return
		}
	}

	respondData(w, http.StatusOK, newReservationResponse(updated))
}

// DeleteReservation удаляет бронь
// DELETE /api/car/:id/reservations/:rid
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	carID, id, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	if err := h.reservationService.DeleteReservation(r.Context(), carID, id); err != nil {
		respondServiceError(w, h.logger, err, "delete reservation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathIDs разбирает ID автомобиля и брони из пути, при ошибке сразу отвечает 400
func (h *ReservationHandler) pathIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	carID, err := getPathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid car ID")
		return uuid.Nil, uuid.Nil, false
	}

	id, err := getPathUUID(r, "rid")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid reservation ID")
		return uuid.Nil, uuid.Nil, false
	}

	return carID, id, true
}

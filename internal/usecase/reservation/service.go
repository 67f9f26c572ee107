package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/pkg/logger"
	"github.com/frontandrew/carrent/internal/repository"
	"github.com/google/uuid"
)

// ReservationInput - полный набор полей брони (создание и PUT)
type ReservationInput struct {
	BookingPerson string
	DateFrom      time.Time
	DateTo        time.Time
}

// ReservationPatch - частичное обновление брони (PATCH), nil-поля не меняются
type ReservationPatch struct {
	BookingPerson *string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// Metrics - счетчики, которые обновляет сервис
type Metrics interface {
	ReservationRejected(reason string)
	ReservationCreated()
}

type noopMetrics struct{}

func (noopMetrics) ReservationRejected(string) {}
func (noopMetrics) ReservationCreated()        {}

// Service содержит бизнес-логику работы с бронями
type Service struct {
	carRepo         repository.CarRepository
	reservationRepo repository.ReservationRepository
	metrics         Metrics
	logger          logger.Logger
}

// NewService создает новый экземпляр ReservationService. metrics может быть nil
func NewService(
	carRepo repository.CarRepository,
	reservationRepo repository.ReservationRepository,
	metrics Metrics,
	logger logger.Logger,
) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		carRepo:         carRepo,
		reservationRepo: reservationRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// ListReservations возвращает все брони автомобиля
func (s *Service) ListReservations(ctx context.Context, carID uuid.UUID) ([]*domain.Reservation, error) {
	if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
		return nil, err
	}
	return s.reservationRepo.ListByCar(ctx, carID, nil)
}

// GetReservation возвращает бронь автомобиля вместе с данными автомобиля
func (s *Service) GetReservation(ctx context.Context, carID, id uuid.UUID) (*domain.Reservation, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.getOwned(ctx, carID, id)
	if err != nil {
		return nil, err
	}

	reservation.Car = car
	return reservation, nil
}

// CreateReservation создает бронь, если период проходит проверку
func (s *Service) CreateReservation(ctx context.Context, carID uuid.UUID, in ReservationInput) (*domain.Reservation, error) {
	s.logger.Info("Creating new reservation", map[string]interface{}{
		"car_id":    carID,
		"date_from": in.DateFrom,
		"date_to":   in.DateTo,
	})

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		BookingPerson: in.BookingPerson,
		DateFrom:      in.DateFrom,
		DateTo:        in.DateTo,
		CarID:         car.ID,
	}

	if err := s.validate(ctx, car, reservation); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		if errors.Is(err, domain.ErrCarNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to create reservation", map[string]interface{}{
			"car_id": carID,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.metrics.ReservationCreated()
	s.logger.Info("Reservation created successfully", map[string]interface{}{
		"reservation_id": reservation.ID,
		"car_id":         carID,
	})

	return reservation, nil
}

// UpdateReservation полностью заменяет данные брони (PUT)
func (s *Service) UpdateReservation(ctx context.Context, carID, id uuid.UUID, in ReservationInput) (*domain.Reservation, error) {
	return s.PatchReservation(ctx, carID, id, ReservationPatch{
		BookingPerson: &in.BookingPerson,
		DateFrom:      &in.DateFrom,
		DateTo:        &in.DateTo,
	})
}

// PatchReservation обновляет только переданные поля брони (PATCH).
// Итоговый период проверяется против остальных броней автомобиля.
func (s *Service) PatchReservation(ctx context.Context, carID, id uuid.UUID, patch ReservationPatch) (*domain.Reservation, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.getOwned(ctx, carID, id)
	if err != nil {
		return nil, err
	}

	if patch.BookingPerson != nil {
		reservation.BookingPerson = *patch.BookingPerson
	}
	if patch.DateFrom != nil {
		reservation.DateFrom = *patch.DateFrom
	}
	if patch.DateTo != nil {
		reservation.DateTo = *patch.DateTo
	}

	if err := s.validate(ctx, car, reservation); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to update reservation", map[string]interface{}{
			"reservation_id": id,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	return reservation, nil
}

// DeleteReservation удаляет бронь без дополнительных проверок
func (s *Service) DeleteReservation(ctx context.Context, carID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, carID, id); err != nil {
		return err
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	s.logger.Info("Reservation deleted", map[string]interface{}{
		"reservation_id": id,
		"car_id":         carID,
	})

	return nil
}

// getOwned возвращает бронь, только если она принадлежит указанному автомобилю
func (s *Service) getOwned(ctx context.Context, carID, id uuid.UUID) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.CarID != carID {
		return nil, domain.ErrReservationNotFound
	}

	return reservation, nil
}

// validate проверяет поля брони и ее период относительно остальных броней автомобиля
func (s *Service) validate(ctx context.Context, car *domain.Car, reservation *domain.Reservation) error {
	if err := reservation.Validate(); err != nil {
		return err
	}

	// Обновляемая бронь не должна конфликтовать сама с собой
	var excludeID *uuid.UUID
	if reservation.ID != uuid.Nil {
		excludeID = &reservation.ID
	}

	others, err := s.reservationRepo.ListByCar(ctx, car.ID, excludeID)
	if err != nil {
		return fmt.Errorf("failed to list car reservations: %w", err)
	}

	existing := make([]domain.Period, 0, len(others))
	for _, other := range others {
		existing = append(existing, other.Period())
	}

	if err := domain.CheckPeriod(existing, reservation.DateFrom, reservation.DateTo, car.NextExaminationDate); err != nil {
		s.metrics.ReservationRejected(rejectionReason(err))
		s.logger.Warn("Reservation period rejected", map[string]interface{}{
			"car_id":    car.ID,
			"date_from": reservation.DateFrom,
			"date_to":   reservation.DateTo,
			"reason":    err.Error(),
		})
		return err
	}

	return nil
}

// rejectionReason - метка причины отказа для метрик
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "invalid_range"
	case errors.Is(err, domain.ErrReservationAfterExamination):
		return "after_examination"
	case errors.Is(err, domain.ErrReservationCollision):
		return "collision"
	default:
		return "other"
	}
}

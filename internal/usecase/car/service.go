package car

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

// CarInput - полный набор полей автомобиля (создание и PUT)
type CarInput struct {
	Brand               string
	Model               string
	RegistrationNumber  string
	NextExaminationDate time.Time
}

// CarPatch - частичное обновление автомобиля (PATCH), nil-поля не меняются
type CarPatch struct {
	Brand               *string
	Model               *string
	RegistrationNumber  *string
	NextExaminationDate *time.Time
}

// Service содержит бизнес-логику работы с автомобилями
type Service struct {
	carRepo         repository.CarRepository
	reservationRepo repository.ReservationRepository
	logger          logger.Logger
}

// NewService создает новый экземпляр CarService
func NewService(
	carRepo repository.CarRepository,
	reservationRepo repository.ReservationRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		carRepo:         carRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// CreateCar создает новый автомобиль
func (s *Service) CreateCar(ctx context.Context, in CarInput) (*domain.Car, error) {
	s.logger.Info("Creating new car", map[string]interface{}{
		"registration_number": in.RegistrationNumber,
	})

	car := &domain.Car{
		Brand:               in.Brand,
		Model:               in.Model,
		RegistrationNumber:  in.RegistrationNumber,
		NextExaminationDate: in.NextExaminationDate,
	}

	// Валидируем данные (заодно нормализуем номер)
	if err := car.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureRegistrationFree(ctx, car.RegistrationNumber, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		if errors.Is(err, domain.ErrCarAlreadyExists) {
			return nil, err
		}
		s.logger.Error("Failed to create car", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	s.logger.Info("Car created successfully", map[string]interface{}{
		"car_id": car.ID,
	})

	return car, nil
}

// GetCarByID возвращает автомобиль по ID
func (s *Service) GetCarByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

// ListCars возвращает все автомобили
func (s *Service) ListCars(ctx context.Context) ([]*domain.Car, error) {
	return s.carRepo.List(ctx)
}

// UpdateCar полностью заменяет данные автомобиля (PUT)
func (s *Service) UpdateCar(ctx context.Context, id uuid.UUID, in CarInput) (*domain.Car, error) {
	return s.PatchCar(ctx, id, CarPatch{
		Brand:               &in.Brand,
		Model:               &in.Model,
		RegistrationNumber:  &in.RegistrationNumber,
		NextExaminationDate: &in.NextExaminationDate,
	})
}

// PatchCar обновляет только переданные поля автомобиля (PATCH)
func (s *Service) PatchCar(ctx context.Context, id uuid.UUID, patch CarPatch) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousExamination := car.NextExaminationDate

	if patch.Brand != nil {
		car.Brand = *patch.Brand
	}
	if patch.Model != nil {
		car.Model = *patch.Model
	}
	if patch.RegistrationNumber != nil {
		car.RegistrationNumber = *patch.RegistrationNumber
	}
	if patch.NextExaminationDate != nil {
		car.NextExaminationDate = *patch.NextExaminationDate
	}

	if err := car.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureRegistrationFree(ctx, car.RegistrationNumber, car.ID); err != nil {
		return nil, err
	}

	// Перенос техосмотра на более раннюю дату не должен оставить брони,
	// заканчивающиеся после него
	if car.NextExaminationDate.Before(previousExamination) {
		if err := s.ensureReservationsBefore(ctx, car); err != nil {
			return nil, err
		}
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		if errors.Is(err, domain.ErrCarNotFound) || errors.Is(err, domain.ErrCarAlreadyExists) {
			return nil, err
		}
		s.logger.Error("Failed to update car", map[string]interface{}{
			"car_id": id,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("failed to update car: %w", err)
	}

	return car, nil
}

// DeleteCar удаляет автомобиль, если на него нет ни одной брони
func (s *Service) DeleteCar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return err
	}

	// Явная проверка перед удалением. Внешний ключ с ON DELETE RESTRICT
	// защищает от того же на уровне БД
	count, err := s.reservationRepo.CountByCar(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count car reservations: %w", err)
	}

	if count > 0 {
		s.logger.Warn("Car deletion rejected", map[string]interface{}{
			"car_id":       id,
			"reservations": count,
		})
		return domain.ErrCarHasReservations
	}

	if err := s.carRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCarHasReservations) || errors.Is(err, domain.ErrCarNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete car: %w", err)
	}

	s.logger.Info("Car deleted", map[string]interface{}{
		"car_id": id,
	})

	return nil
}

// ensureRegistrationFree проверяет, что номер не занят другим автомобилем
func (s *Service) ensureRegistrationFree(ctx context.Context, number string, selfID uuid.UUID) error {
	existing, err := s.carRepo.GetByRegistrationNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrCarNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check existing car: %w", err)
	}

	if existing.ID != selfID {
		s.logger.Warn("Car already exists", map[string]interface{}{
			"registration_number": number,
		})
		return domain.ErrCarAlreadyExists
	}

	return nil
}

// ensureReservationsBefore проверяет, что все брони автомобиля заканчиваются не позже техосмотра
func (s *Service) ensureReservationsBefore(ctx context.Context, car *domain.Car) error {
	reservations, err := s.reservationRepo.ListByCar(ctx, car.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to list car reservations: %w", err)
	}

	for _, r := range reservations {
		if domain.TruncateToDate(r.DateTo).After(car.NextExaminationDate) {
			return domain.ErrReservationAfterExamination
		}
	}

	return nil
}

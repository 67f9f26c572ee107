package repository

import (
	"context"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/google/uuid"
)

// CarRepository определяет методы для работы с автомобилями
type CarRepository interface {
	// Create создает новый автомобиль
	// Возвращает domain.ErrCarAlreadyExists, если номер уже занят
	Create(ctx context.Context, car *domain.Car) error

	// GetByID возвращает автомобиль по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)

	// GetByRegistrationNumber возвращает автомобиль по регистрационному номеру
	GetByRegistrationNumber(ctx context.Context, number string) (*domain.Car, error)

	// Update обновляет данные автомобиля
	Update(ctx context.Context, car *domain.Car) error

	// Delete удаляет автомобиль
	// Возвращает domain.ErrCarHasReservations, если на автомобиль ссылаются брони
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает все автомобили
	List(ctx context.Context) ([]*domain.Car, error)
}

// ReservationRepository определяет методы для работы с бронями
type ReservationRepository interface {
	// Create создает новую бронь
	Create(ctx context.Context, reservation *domain.Reservation) error

	// GetByID возвращает бронь по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)

	// Update обновляет бронь
	Update(ctx context.Context, reservation *domain.Reservation) error

	// Delete удаляет бронь
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByCar возвращает брони автомобиля, упорядоченные по date_from
	// Если excludeID не nil, бронь с этим ID в результат не попадает
	ListByCar(ctx context.Context, carID uuid.UUID, excludeID *uuid.UUID) ([]*domain.Reservation, error)

	// CountByCar возвращает количество броней автомобиля
	CountByCar(ctx context.Context, carID uuid.UUID) (int, error)
}

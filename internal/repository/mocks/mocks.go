// Package mocks содержит testify-моки репозиториев для тестов сервисов
package mocks

import (
	"context"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// CarRepository - мок repository.CarRepository
type CarRepository struct {
	mock.Mock
}

var _ repository.CarRepository = (*CarRepository)(nil)

func (m *CarRepository) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *CarRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *CarRepository) GetByRegistrationNumber(ctx context.Context, number string) (*domain.Car, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *CarRepository) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *CarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CarRepository) List(ctx context.Context) ([]*domain.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Car), args.Error(1)
}

// ReservationRepository - мок repository.ReservationRepository
type ReservationRepository struct {
	mock.Mock
}

var _ repository.ReservationRepository = (*ReservationRepository)(nil)

func (m *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *ReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ReservationRepository) ListByCar(ctx context.Context, carID uuid.UUID, excludeID *uuid.UUID) ([]*domain.Reservation, error) {
	args := m.Called(ctx, carID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *ReservationRepository) CountByCar(ctx context.Context, carID uuid.UUID) (int, error) {
	args := m.Called(ctx, carID)
	return args.Int(0), args.Error(1)
}

package car

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/pkg/logger"
	"github.com/frontandrew/carrent/internal/repository/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService() (*Service, *mocks.CarRepository, *mocks.ReservationRepository) {
	carRepo := new(mocks.CarRepository)
	reservationRepo := new(mocks.ReservationRepository)
	return NewService(carRepo, reservationRepo, logger.NewNoop()), carRepo, reservationRepo
}

func opel(id uuid.UUID) *domain.Car {
	return &domain.Car{
		ID:                  id,
		Brand:               "Opel",
		Model:               "Astra",
		RegistrationNumber:  "NO9580",
		NextExaminationDate: date(2021, 3, 19),
	}
}

func TestService_CreateCar(t *testing.T) {
	t.Run("успешное создание", func(t *testing.T) {
		svc, carRepo, _ := newTestService()
		carRepo.On("GetByRegistrationNumber", mock.Anything, "NO7845").Return(nil, domain.ErrCarNotFound)
		carRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Car")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Car).ID = uuid.New()
			}).
			Return(nil)

		car, err := svc.CreateCar(context.Background(), CarInput{
			Brand:               "Toyota",
			Model:               "Avensis",
			RegistrationNumber:  "no 7845",
			NextExaminationDate: date(2022, 1, 4),
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, car.ID)
		assert.Equal(t, "NO7845", car.RegistrationNumber)
		carRepo.AssertExpectations(t)
	})

	t.Run("номер уже занят", func(t *testing.T) {
		svc, carRepo, _ := newTestService()
		carRepo.On("GetByRegistrationNumber", mock.Anything, "NO9580").Return(opel(uuid.New()), nil)

		_, err := svc.CreateCar(context.Background(), CarInput{
			Brand:               "Toyota",
			Model:               "Avensis",
			RegistrationNumber:  "NO9580",
			NextExaminationDate: date(2022, 1, 4),
		})

		assert.ErrorIs(t, err, domain.ErrCarAlreadyExists)
		carRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("невалидные данные", func(t *testing.T) {
		svc, carRepo, _ := newTestService()

		_, err := svc.CreateCar(context.Background(), CarInput{Brand: "Toyota"})

		assert.ErrorIs(t, err, domain.ErrValidation)
		carRepo.AssertExpectations(t)
	})
}

func TestService_PatchCar(t *testing.T) {
	id := uuid.New()

	t.Run("меняет только переданные поля", func(t *testing.T) {
		svc, carRepo, _ := newTestService()
		carRepo.On("GetByID", mock.Anything, id).Return(opel(id), nil)
		carRepo.On("GetByRegistrationNumber", mock.Anything, "NO9580").Return(opel(id), nil)
		carRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Car")).Return(nil)

		brand, model := "BMW", "x7"
		car, err := svc.PatchCar(context.Background(), id, CarPatch{Brand: &brand, Model: &model})

		require.NoError(t, err)
		assert.Equal(t, "BMW", car.Brand)
		assert.Equal(t, "x7", car.Model)
		assert.Equal(t, "NO9580", car.RegistrationNumber)
		assert.Equal(t, date(2021, 3, 19), car.NextExaminationDate)
	})

	t.Run("перенос техосмотра раньше существующей брони", func(t *testing.T) {
		svc, carRepo, reservationRepo := newTestService()
		carRepo.On("GetByID", mock.Anything, id).Return(opel(id), nil)
		carRepo.On("GetByRegistrationNumber", mock.Anything, "NO9580").Return(opel(id), nil)
		reservationRepo.On("ListByCar", mock.Anything, id, (*uuid.UUID)(nil)).Return([]*domain.Reservation{{
			ID:       uuid.New(),
			CarID:    id,
			DateFrom: time.Date(2021, 1, 10, 3, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2021, 1, 20, 0, 0, 0, 0, time.UTC),
		}}, nil)

		earlier := date(2021, 1, 15)
		_, err := svc.PatchCar(context.Background(), id, CarPatch{NextExaminationDate: &earlier})

		assert.ErrorIs(t, err, domain.ErrReservationAfterExamination)
		carRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("автомобиль не найден", func(t *testing.T) {
		svc, carRepo, _ := newTestService()
		carRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrCarNotFound)

		_, err := svc.UpdateCar(context.Background(), id, CarInput{})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestService_DeleteCar(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		setup      func(*mocks.CarRepository, *mocks.ReservationRepository)
		wantErr    error
		wantFail   bool
		wantDelete bool
	}{
		{
			name: "без броней",
			setup: func(c *mocks.CarRepository, r *mocks.ReservationRepository) {
				c.On("GetByID", mock.Anything, id).Return(opel(id), nil)
				r.On("CountByCar", mock.Anything, id).Return(0, nil)
				c.On("Delete", mock.Anything, id).Return(nil)
			},
			wantDelete: true,
		},
		{
			name: "есть брони",
			setup: func(c *mocks.CarRepository, r *mocks.ReservationRepository) {
				c.On("GetByID", mock.Anything, id).Return(opel(id), nil)
				r.On("CountByCar", mock.Anything, id).Return(1, nil)
			},
			wantErr: domain.ErrCarHasReservations,
		},
		{
			name: "бронь появилась между проверкой и удалением",
			setup: func(c *mocks.CarRepository, r *mocks.ReservationRepository) {
				c.On("GetByID", mock.Anything, id).Return(opel(id), nil)
				r.On("CountByCar", mock.Anything, id).Return(0, nil)
				c.On("Delete", mock.Anything, id).Return(domain.ErrCarHasReservations)
			},
			wantErr:    domain.ErrReferentialConflict,
			wantDelete: true,
		},
		{
			name: "автомобиль не найден",
			setup: func(c *mocks.CarRepository, r *mocks.ReservationRepository) {
				c.On("GetByID", mock.Anything, id).Return(nil, domain.ErrCarNotFound)
			},
			wantErr: domain.ErrCarNotFound,
		},
		{
			name: "ошибка БД",
			setup: func(c *mocks.CarRepository, r *mocks.ReservationRepository) {
				c.On("GetByID", mock.Anything, id).Return(opel(id), nil)
				r.On("CountByCar", mock.Anything, id).Return(0, errors.New("connection reset"))
			},
			wantFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, carRepo, reservationRepo := newTestService()
			tt.setup(carRepo, reservationRepo)

			err := svc.DeleteCar(context.Background(), id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantFail:
				assert.Error(t, err)
				assert.False(t, errors.Is(err, domain.ErrReferentialConflict))
			default:
				assert.NoError(t, err)
			}

			if tt.wantDelete {
				carRepo.AssertCalled(t, "Delete", mock.Anything, id)
			} else {
				carRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
		})
	}
}

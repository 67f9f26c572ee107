package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const carColumns = `id, brand, model, registration_number, next_examination_date, created_at, updated_at`

type carRepository struct {
	db *pgxpool.Pool
}

func NewCarRepository(db *pgxpool.Pool) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `
		INSERT INTO cars (id, brand, model, registration_number, next_examination_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	car.ID = uuid.New()
	car.CreatedAt = time.Now()
	car.UpdatedAt = car.CreatedAt

	// Нормализуем номер перед сохранением
	car.RegistrationNumber = domain.NormalizeRegistrationNumber(car.RegistrationNumber)

	_, err := r.db.Exec(ctx, query,
		car.ID,
		car.Brand,
		car.Model,
		car.RegistrationNumber,
		car.NextExaminationDate,
		car.CreatedAt,
		car.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCarAlreadyExists
		}
		return err
	}

	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car, err := scanCar(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCarNotFound
		}
		return nil, err
	}

	return car, nil
}

func (r *carRepository) GetByRegistrationNumber(ctx context.Context, number string) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE registration_number = $1`

	car, err := scanCar(r.db.QueryRow(ctx, query, domain.NormalizeRegistrationNumber(number)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCarNotFound
		}
		return nil, err
	}

	return car, nil
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `
		UPDATE cars
		SET brand = $2, model = $3, registration_number = $4, next_examination_date = $5, updated_at = $6
		WHERE id = $1
	`

	car.UpdatedAt = time.Now()
	car.RegistrationNumber = domain.NormalizeRegistrationNumber(car.RegistrationNumber)

	result, err := r.db.Exec(ctx, query,
		car.ID,
		car.Brand,
		car.Model,
		car.RegistrationNumber,
		car.NextExaminationDate,
		car.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCarAlreadyExists
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCarNotFound
	}

	return nil
}

func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Внешний ключ reservations.car_id объявлен с ON DELETE RESTRICT
	query := `DELETE FROM cars WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCarHasReservations
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCarNotFound
	}

	return nil
}

func (r *carRepository) List(ctx context.Context) ([]*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY created_at, registration_number`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []*domain.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}

	return cars, rows.Err()
}

// scanCar читает одну строку таблицы cars
func scanCar(row pgx.Row) (*domain.Car, error) {
	car := &domain.Car{}
	err := row.Scan(
		&car.ID,
		&car.Brand,
		&car.Model,
		&car.RegistrationNumber,
		&car.NextExaminationDate,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return car, nil
}

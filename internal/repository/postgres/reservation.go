package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql - построитель запросов с плейсхолдерами $1, $2, ... для pgx
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var reservationColumns = []string{
	"id", "booking_person", "date_from", "date_to", "car_id", "created_at", "updated_at",
}

type reservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	reservation.ID = uuid.New()
	reservation.CreatedAt = time.Now()
	reservation.UpdatedAt = reservation.CreatedAt

	query, args, err := psql.Insert("reservations").
		Columns(reservationColumns...).
		Values(
			reservation.ID,
			reservation.BookingPerson,
			reservation.DateFrom,
			reservation.DateTo,
			reservation.CarID,
			reservation.CreatedAt,
			reservation.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert reservation query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCarNotFound
		}
		return err
	}

	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query, args, err := psql.Select(reservationColumns...).
		From("reservations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select reservation query: %w", err)
	}

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	return reservation, nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	reservation.UpdatedAt = time.Now()

	query, args, err := psql.Update("reservations").
		Set("booking_person", reservation.BookingPerson).
		Set("date_from", reservation.DateFrom).
		Set("date_to", reservation.DateTo).
		Set("updated_at", reservation.UpdatedAt).
		Where(sq.Eq{"id": reservation.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}

	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("reservations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete reservation query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}

	return nil
}

// listByCarQuery строит выборку броней автомобиля, исключая excludeID, если он задан
func listByCarQuery(carID uuid.UUID, excludeID *uuid.UUID) (string, []interface{}, error) {
	builder := psql.Select(reservationColumns...).
		From("reservations").
		Where(sq.Eq{"car_id": carID})

	// При обновлении брони она не должна пересекаться сама с собой
	if excludeID != nil {
		builder = builder.Where(sq.NotEq{"id": *excludeID})
	}

	return builder.OrderBy("date_from", "id").ToSql()
}

func (r *reservationRepository) ListByCar(ctx context.Context, carID uuid.UUID, excludeID *uuid.UUID) ([]*domain.Reservation, error) {
	query, args, err := listByCarQuery(carID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("build list reservations query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []*domain.Reservation{}
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	return reservations, rows.Err()
}

func (r *reservationRepository) CountByCar(ctx context.Context, carID uuid.UUID) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("reservations").
		Where(sq.Eq{"car_id": carID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count reservations query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// scanReservation читает одну строку таблицы reservations
func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	reservation := &domain.Reservation{}
	err := row.Scan(
		&reservation.ID,
		&reservation.BookingPerson,
		&reservation.DateFrom,
		&reservation.DateTo,
		&reservation.CarID,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

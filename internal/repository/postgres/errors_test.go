package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCode(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "cars_registration_number_key"}
	fk := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "reservations_car_id_fkey"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))

	assert.True(t, isForeignKeyViolation(fmt.Errorf("exec: %w", fk)))
	assert.False(t, isUniqueViolation(fk))

	assert.Equal(t, "", pgErrorCode(errors.New("connection refused")))
}

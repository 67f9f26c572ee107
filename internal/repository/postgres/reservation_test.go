package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByCarQuery(t *testing.T) {
	carID := uuid.New()
	selfID := uuid.New()

	tests := []struct {
		name      string
		excludeID *uuid.UUID
		wantSQL   string
		wantArgs  []interface{}
	}{
		{
			name:     "все брони автомобиля",
			wantSQL:  "SELECT id, booking_person, date_from, date_to, car_id, created_at, updated_at FROM reservations WHERE car_id = $1 ORDER BY date_from, id",
			wantArgs: []interface{}{carID.String()},
		},
		{
			name:      "без обновляемой брони",
			excludeID: &selfID,
			wantSQL:   "SELECT id, booking_person, date_from, date_to, car_id, created_at, updated_at FROM reservations WHERE car_id = $1 AND id <> $2 ORDER BY date_from, id",
			wantArgs:  []interface{}{carID.String(), selfID.String()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := listByCarQuery(carID, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

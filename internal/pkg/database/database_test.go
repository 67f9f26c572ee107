package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])
}

func TestInitMigrationProtectsCars(t *testing.T) {
	script, err := migrationsFS.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)

	sql := string(script)
	assert.True(t, strings.Contains(sql, "ON DELETE RESTRICT"))
	assert.True(t, strings.Contains(sql, "registration_number   VARCHAR(15)  NOT NULL UNIQUE"))
}

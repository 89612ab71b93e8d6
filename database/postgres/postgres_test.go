package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "sim")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_SSLMODE", "require")

	assert.Equal(t, "host=db port=5432 user=sim password=secret dbname=app sslmode=require", DSN())
}

func TestSchemaDeclaresTables(t *testing.T) {
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, schema, "REFERENCES users (id) ON DELETE CASCADE")
}

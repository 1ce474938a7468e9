package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE"} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_DatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", " postgres://otic:secret@db:5432/gestic ")
	t.Setenv("DB_HOST", "ignored")

	assert.Equal(t, "postgres://otic:secret@db:5432/gestic", FromEnv())
}

func TestFromEnv_Keywords(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "otic")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "gestic")

	assert.Equal(t,
		"host=localhost port=5432 user=otic password=secret dbname=gestic sslmode=disable",
		FromEnv())

	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_SSLMODE", "require")
	assert.Contains(t, FromEnv(), "port=5433")
	assert.Contains(t, FromEnv(), "sslmode=require")
}

func TestFromEnv_Empty(t *testing.T) {
	clearEnv(t)
	assert.Empty(t, FromEnv())
}

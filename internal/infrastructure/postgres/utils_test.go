package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(assert.AnError))
}

func TestIsOutOfRange(t *testing.T) {
	assert.True(t, isOutOfRange(fmt.Errorf("update product: %w", &pgconn.PgError{Code: "22003"})))
	assert.False(t, isOutOfRange(&pgconn.PgError{Code: "22P02"}))
}

func TestIsInvalidText(t *testing.T) {
	assert.True(t, isInvalidText(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, isInvalidText(assert.AnError))
}

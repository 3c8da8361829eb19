package internal

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
		ok     bool
	}{
		{ErrUserNotFound, http.StatusNotFound, "User not found", true},
		{fmt.Errorf("lookup: %w", ErrPlayerNotFound), http.StatusNotFound, "Player not found", true},
		{ErrNotFavorite, http.StatusNotFound, "Player not found in favorites", true},
		{ErrUsernameTaken, http.StatusBadRequest, "Username already exists", true},
		{ErrAlreadyFavorite, http.StatusBadRequest, "Player already in favorites", true},
		{ErrInvalidCredentials, http.StatusBadRequest, "Invalid username or password", true},
		{errors.New("boom"), http.StatusInternalServerError, "", false},
	}
	for _, tt := range tests {
		status, msg, ok := apiError(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.msg, msg)
		assert.Equal(t, tt.ok, ok)
	}
}

func TestPgCode(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgUniqueViolation})
	assert.Equal(t, pgUniqueViolation, pgCode(err))
	assert.Equal(t, "", pgCode(errors.New("plain")))
	assert.Equal(t, "", pgCode(nil))
}

package internal

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrNotFavorite        = errors.New("player not found in favorites")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrAlreadyFavorite    = errors.New("player already in favorites")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// apiError maps a store error to the status code and message sent to
// clients. ok is false for errors that should surface as a 500.
func apiError(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, "User not found", true
	case errors.Is(err, ErrPlayerNotFound):
		return http.StatusNotFound, "Player not found", true
	case errors.Is(err, ErrNotFavorite):
		return http.StatusNotFound, "Player not found in favorites", true
	case errors.Is(err, ErrUsernameTaken):
		return http.StatusBadRequest, "Username already exists", true
	case errors.Is(err, ErrAlreadyFavorite):
		return http.StatusBadRequest, "Player already in favorites", true
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid username or password", true
	}
	return http.StatusInternalServerError, "", false
}

// respondErr writes err to the client. Unexpected errors are logged and
// returned as 500 with fallback as the message and the raw cause attached.
func respondErr(c *gin.Context, err error, fallback string) {
	if status, msg, ok := apiError(err); ok {
		c.JSON(status, gin.H{"message": msg})
		return
	}
	log.Printf("[%s] %s: %v", requestID(c), fallback, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback, "error": err.Error()})
}

package internal

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the only component that talks to the database. Every method
// takes its connection from the pool and returns it before exiting.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UserID resolves a username. It returns ErrUserNotFound if no such user
// exists.
func (s *Store) UserID(ctx context.Context, username string) (int, error) {
	var id int
	err := qRow(ctx, s.db, psql.
		Select("user_id").
		From("users").
		Where(sq.Eq{"username": username}),
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("resolve user %q: %w", username, err)
	}
	return id, nil
}

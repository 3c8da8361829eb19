package internal

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// passwordDigest folds a password of any length into 44 bytes, below
// bcrypt's 72-byte input limit.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordDigest(password)) == nil
}

func (s *Store) CreateUser(ctx context.Context, username, password string) (int, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	var id int
	err = qRow(ctx, s.db, psql.
		Insert("users").
		Columns("username", "pass_hash").
		Values(username, hash).
		Suffix("RETURNING user_id"),
	).Scan(&id)
	if pgCode(err) == pgUniqueViolation {
		return 0, ErrUsernameTaken
	}
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// Authenticate returns the id of the user whose stored hash matches
// password. Unknown users and wrong passwords are indistinguishable.
func (s *Store) Authenticate(ctx context.Context, username, password string) (int, error) {
	var id int
	var passHash string
	err := qRow(ctx, s.db, psql.
		Select("user_id", "pass_hash").
		From("users").
		Where(sq.Eq{"username": username}),
	).Scan(&id, &passHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, fmt.Errorf("load user: %w", err)
	}
	if !checkPassword(passHash, password) {
		return 0, ErrInvalidCredentials
	}
	return id, nil
}

func (s *Store) GetUser(ctx context.Context, id int) (User, error) {
	var u User
	err := qRow(ctx, s.db, psql.
		Select("user_id", "username").
		From("users").
		Where(sq.Eq{"user_id": id}),
	).Scan(&u.ID, &u.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ListUsers never selects the password hash.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := qQuery(ctx, s.db, psql.
		Select("user_id", "username").
		From("users").
		OrderBy("user_id ASC"),
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

package internal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id   SERIAL PRIMARY KEY,
		username  TEXT NOT NULL UNIQUE,
		pass_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		player_id    SERIAL PRIMARY KEY,
		name         VARCHAR(255) NOT NULL,
		position     VARCHAR(100) NOT NULL DEFAULT '',
		team         VARCHAR(255) NOT NULL DEFAULT '',
		market_value VARCHAR(50)  NOT NULL DEFAULT '',
		nationality  VARCHAR(100) NOT NULL DEFAULT '',
		height       VARCHAR(50)  NOT NULL DEFAULT '',
		img          TEXT,
		birth_date   TEXT         NOT NULL DEFAULT '',
		wage         VARCHAR(100) NOT NULL DEFAULT '',
		potential    VARCHAR(50)  NOT NULL DEFAULT '',
		rating       VARCHAR(50)  NOT NULL DEFAULT '',
		description  TEXT         NOT NULL DEFAULT '',
		foot         VARCHAR(20)  NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS players_name_idx ON players (name)`,
	`CREATE TABLE IF NOT EXISTS user_players (
		user_id   INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		player_id INTEGER NOT NULL REFERENCES players(player_id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, player_id)
	)`,
	`CREATE INDEX IF NOT EXISTS user_players_player_idx ON user_players (player_id)`,
	`CREATE TABLE IF NOT EXISTS starting_eleven (
		user_id   INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		position  TEXT    NOT NULL,
		player_id INTEGER NOT NULL REFERENCES players(player_id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, position)
	)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

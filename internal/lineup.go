package internal

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

func lineupQuery(userID int) sq.SelectBuilder {
	return psql.
		Select("se.position", "p.player_id", "p.name", "p.img").
		From("starting_eleven se").
		Join("players p ON p.player_id = se.player_id").
		Where(sq.Eq{"se.user_id": userID}).
		OrderBy("se.position ASC")
}

// ListLineup returns the user's occupied slots. Slots are inner-joined with
// players, so a slot whose player is gone produces no row.
func (s *Store) ListLineup(ctx context.Context, userID int) ([]LineupSlot, error) {
	rows, err := qQuery(ctx, s.db, lineupQuery(userID))
	if err != nil {
		return nil, fmt.Errorf("list lineup: %w", err)
	}
	defer rows.Close()

	out := []LineupSlot{}
	for rows.Next() {
		var sl LineupSlot
		if err := rows.Scan(&sl.Position, &sl.PlayerID, &sl.Name, &sl.Picture); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

func upsertSlotQuery(userID int, position string, playerID int) sq.InsertBuilder {
	return psql.
		Insert("starting_eleven").
		Columns("user_id", "position", "player_id").
		Values(userID, position, playerID).
		Suffix("ON CONFLICT (user_id, position) DO UPDATE SET player_id = EXCLUDED.player_id")
}

// SetSlot puts playerID into the user's position, replacing whoever held it.
// The same player may occupy several positions.
func (s *Store) SetSlot(ctx context.Context, userID int, position string, playerID int) error {
	return setSlot(ctx, s.db, userID, position, playerID)
}

func setSlot(ctx context.Context, db querier, userID int, position string, playerID int) error {
	_, err := qExec(ctx, db, upsertSlotQuery(userID, position, playerID))
	if pgCode(err) == pgForeignKeyViolation {
		return ErrPlayerNotFound
	}
	if err != nil {
		return fmt.Errorf("set slot %q: %w", position, err)
	}
	return nil
}

// ClearSlot empties position. Clearing an empty slot is not an error.
func (s *Store) ClearSlot(ctx context.Context, userID int, position string) error {
	_, err := qExec(ctx, s.db, psql.
		Delete("starting_eleven").
		Where(sq.Eq{"user_id": userID, "position": position}),
	)
	if err != nil {
		return fmt.Errorf("clear slot %q: %w", position, err)
	}
	return nil
}

package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Placeholders stored for attributes the client did not send.
const (
	defaultTeam        = "Unknown Team"
	defaultPosition    = "Unknown Position"
	defaultNationality = "Not Available"
	defaultBirthDate   = "Unknown Date"
	defaultHeight      = "Not Available"
	defaultDescription = "No Description"
	defaultMarketValue = "Not Available"
	defaultPotential   = "Not Available"
	defaultRating      = "Not Available"
	defaultFoot        = "Not Specified"
	defaultWage        = "Not Available"
)

var playerColumns = []string{
	"p.player_id", "p.name", "p.position", "p.team", "p.market_value",
	"p.nationality", "p.height", "p.img", "p.birth_date", "p.wage",
	"p.potential", "p.rating", "p.description", "p.foot",
}

func scanPlayer(row pgx.Row, p *Player) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Position, &p.Team, &p.MarketValue,
		&p.Nationality, &p.Height, &p.Img, &p.BirthDate, &p.Wage,
		&p.Potential, &p.Rating, &p.Description, &p.Foot,
	)
}

func collectPlayers(rows pgx.Rows) ([]Player, error) {
	defer rows.Close()

	out := []Player{}
	for rows.Next() {
		var p Player
		if err := scanPlayer(rows, &p); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// lastSegment turns resource identifiers such as
// "http://example.org/team/Inter_Miami" into "Inter Miami".
func lastSegment(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return strings.ReplaceAll(s, "_", " ")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// newPlayer applies normalization and placeholder defaults to in.
func newPlayer(in PlayerInput) Player {
	return Player{
		Name:        in.Name,
		Team:        orDefault(lastSegment(in.Team), defaultTeam),
		Position:    orDefault(lastSegment(in.Position), defaultPosition),
		Img:         in.Img,
		Nationality: orDefault(in.Nationality, defaultNationality),
		BirthDate:   orDefault(in.BirthDate, defaultBirthDate),
		Height:      orDefault(in.Height, defaultHeight),
		Description: orDefault(in.Description, defaultDescription),
		MarketValue: orDefault(in.MarketValue, defaultMarketValue),
		Potential:   orDefault(in.Potential, defaultPotential),
		Rating:      orDefault(in.Rating, defaultRating),
		Foot:        orDefault(in.Foot, defaultFoot),
		Wage:        orDefault(in.Wage, defaultWage),
	}
}

func (s *Store) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := qQuery(ctx, s.db, psql.
		Select(playerColumns...).
		From("players p").
		OrderBy("p.player_id ASC"),
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return collectPlayers(rows)
}

func (s *Store) ListFavorites(ctx context.Context, userID int) ([]Player, error) {
	rows, err := qQuery(ctx, s.db, psql.
		Select(playerColumns...).
		From("players p").
		Join("user_players up ON up.player_id = p.player_id").
		Where(sq.Eq{"up.user_id": userID}).
		OrderBy("p.player_id ASC"),
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return collectPlayers(rows)
}

// AddFavorite links a player to the user and returns its id. Without
// in.PlayerID a new players row is always created, even if an identical
// player already exists.
func (s *Store) AddFavorite(ctx context.Context, userID int, in PlayerInput) (int, error) {
	var playerID int
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		if in.PlayerID != nil {
			playerID = *in.PlayerID
		} else {
			p := newPlayer(in)
			err := qRow(ctx, tx, psql.
				Insert("players").
				Columns("name", "team", "position", "img", "nationality", "birth_date",
					"height", "description", "market_value", "potential", "rating", "foot", "wage").
				Values(p.Name, p.Team, p.Position, p.Img, p.Nationality, p.BirthDate,
					p.Height, p.Description, p.MarketValue, p.Potential, p.Rating, p.Foot, p.Wage).
				Suffix("RETURNING player_id"),
			).Scan(&playerID)
			if err != nil {
				return fmt.Errorf("insert player: %w", err)
			}
		}

		return linkFavorite(ctx, tx, userID, playerID)
	})
	if err != nil {
		return 0, err
	}
	return playerID, nil
}

// RemoveFavorite unlinks the user's favorite called name. If that was the
// last favorite referencing the player, the player row is deleted too,
// which cascades to any lineup slot holding it. The returned bool reports
// whether the player row was deleted.
func (s *Store) RemoveFavorite(ctx context.Context, userID int, name string) (bool, error) {
	var purged bool
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var playerID int
		err := qRow(ctx, tx, psql.
			Select("p.player_id").
			From("players p").
			Join("user_players up ON up.player_id = p.player_id").
			Where(sq.Eq{"up.user_id": userID, "p.name": name}).
			OrderBy("p.player_id ASC").
			Limit(1),
		).Scan(&playerID)
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			err := qRow(ctx, tx, psql.
				Select().
				Column("EXISTS (SELECT 1 FROM players WHERE name = ?)", name),
			).Scan(&exists)
			if err != nil {
				return fmt.Errorf("lookup player: %w", err)
			}
			if !exists {
				return ErrPlayerNotFound
			}
			return ErrNotFavorite
		}
		if err != nil {
			return fmt.Errorf("lookup favorite: %w", err)
		}

		if _, err := qExec(ctx, tx, psql.
			Delete("user_players").
			Where(sq.Eq{"user_id": userID, "player_id": playerID}),
		); err != nil {
			return fmt.Errorf("unlink favorite: %w", err)
		}

		purged, err = purgeOrphan(ctx, tx, playerID)
		return err
	})
	return purged, err
}

func linkFavorite(ctx context.Context, db querier, userID, playerID int) error {
	_, err := qExec(ctx, db, psql.
		Insert("user_players").
		Columns("user_id", "player_id").
		Values(userID, playerID),
	)
	switch pgCode(err) {
	case pgUniqueViolation:
		return ErrAlreadyFavorite
	case pgForeignKeyViolation:
		return ErrPlayerNotFound
	}
	if err != nil {
		return fmt.Errorf("link favorite: %w", err)
	}
	return nil
}

// purgeOrphanQuery deletes the player only while no favorite references it.
func purgeOrphanQuery(playerID int) sq.DeleteBuilder {
	return psql.
		Delete("players").
		Where(sq.Eq{"player_id": playerID}).
		Where("NOT EXISTS (SELECT 1 FROM user_players WHERE player_id = ?)", playerID)
}

func purgeOrphan(ctx context.Context, db querier, playerID int) (bool, error) {
	tag, err := qExec(ctx, db, purgeOrphanQuery(playerID))
	if err != nil {
		return false, fmt.Errorf("purge player: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

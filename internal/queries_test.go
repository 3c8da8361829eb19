package internal

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier captures the statements sent to it and answers Exec with
// a fixed tag or error.
type recordingQuerier struct {
	sql  []string
	args [][]any
	tag  pgconn.CommandTag
	err  error
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
	return q.tag, q.err
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{errors.New("not supported")}
}

func TestUpsertSlotQuery(t *testing.T) {
	sql, args, err := upsertSlotQuery(3, "GK", 9).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO starting_eleven (user_id,position,player_id) VALUES ($1,$2,$3) "+
			"ON CONFLICT (user_id, position) DO UPDATE SET player_id = EXCLUDED.player_id",
		sql)
	assert.Equal(t, []any{3, "GK", 9}, args)
}

func TestPurgeOrphanQuery(t *testing.T) {
	sql, args, err := purgeOrphanQuery(7).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"DELETE FROM players WHERE player_id = $1 "+
			"AND NOT EXISTS (SELECT 1 FROM user_players WHERE player_id = $2)",
		sql)
	assert.Equal(t, []any{7, 7}, args)
}

func TestLineupQueryInnerJoins(t *testing.T) {
	sql, args, err := lineupQuery(5).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM starting_eleven se JOIN players p ON p.player_id = se.player_id")
	assert.NotContains(t, sql, "LEFT")
	assert.Contains(t, sql, "WHERE se.user_id = $1")
	assert.Equal(t, []any{5}, args)
}

func TestSetSlotMapsErrors(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		want    error
	}{
		{"ok", nil, nil},
		{"missing player", &pgconn.PgError{Code: pgForeignKeyViolation}, ErrPlayerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &recordingQuerier{err: tt.execErr}
			err := setSlot(context.Background(), q, 1, "ST", 2)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
			require.Len(t, q.sql, 1)
			assert.Contains(t, q.sql[0], "ON CONFLICT (user_id, position)")
		})
	}

	q := &recordingQuerier{err: errors.New("conn closed")}
	err := setSlot(context.Background(), q, 1, "ST", 2)
	require.Error(t, err)
	_, _, mapped := apiError(err)
	assert.False(t, mapped)
}

func TestLinkFavoriteMapsErrors(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		want    error
	}{
		{"duplicate link", &pgconn.PgError{Code: pgUniqueViolation}, ErrAlreadyFavorite},
		{"missing player", &pgconn.PgError{Code: pgForeignKeyViolation}, ErrPlayerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &recordingQuerier{err: tt.execErr}
			assert.ErrorIs(t, linkFavorite(context.Background(), q, 1, 2), tt.want)
			require.Len(t, q.sql, 1)
			assert.Equal(t, "INSERT INTO user_players (user_id,player_id) VALUES ($1,$2)", q.sql[0])
			assert.Equal(t, []any{1, 2}, q.args[0])
		})
	}
}

func TestPurgeOrphanReportsDeletion(t *testing.T) {
	q := &recordingQuerier{tag: pgconn.NewCommandTag("DELETE 1")}
	purged, err := purgeOrphan(context.Background(), q, 4)
	require.NoError(t, err)
	assert.True(t, purged)

	q = &recordingQuerier{tag: pgconn.NewCommandTag("DELETE 0")}
	purged, err = purgeOrphan(context.Background(), q, 4)
	require.NoError(t, err)
	assert.False(t, purged)
}

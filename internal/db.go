package internal

import (
	"context"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

/* ===================== CONNECT ===================== */

func poolConfig(cfg *Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.DBMaxConns > 0 {
		pc.MaxConns = cfg.DBMaxConns
	}
	return pc, nil
}

// MustDB keeps dialing until the database answers a ping or
// cfg.DBConnectTimeout runs out, then exits the process.
func MustDB(cfg *Config) *pgxpool.Pool {
	pc, err := poolConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}

	deadline := time.Now().Add(cfg.DBConnectTimeout)
	for attempt := 1; ; attempt++ {
		pool, err := dial(pc, cfg.DBPingTimeout)
		if err == nil {
			if attempt > 1 {
				log.Printf("database ready after %d attempts", attempt)
			}
			return pool
		}
		if time.Now().After(deadline) {
			log.Fatalf("failed to connect DB after %d attempts: %v", attempt, err)
		}
		log.Printf("database not ready (attempt %d): %v", attempt, err)
		time.Sleep(time.Second)
	}
}

func dial(pc *pgxpool.Config, pingTimeout time.Duration) (*pgxpool.Pool, error) {
	if pingTimeout <= 0 {
		pingTimeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

/* ===================== SQUIRREL HELPERS ===================== */

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// querier is implemented by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func qExec(ctx context.Context, db querier, q sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return db.Exec(ctx, sql, args...)
}

func qQuery(ctx context.Context, db querier, q sq.Sqlizer) (pgx.Rows, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return db.Query(ctx, sql, args...)
}

func qRow(ctx context.Context, db querier, q sq.Sqlizer) pgx.Row {
	sql, args, err := q.ToSql()
	if err != nil {
		return errRow{err}
	}
	return db.QueryRow(ctx, sql, args...)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// ----------- TX -----------

// withTx runs fn inside a transaction. The transaction is rolled back on any
// error returned by fn and committed otherwise.
func withTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

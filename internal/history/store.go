// Package history keeps an audit trail of delivered searches in Postgres.
package history

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"places/internal/models"
)

const createTable = `CREATE TABLE IF NOT EXISTS search_history (
	id           UUID PRIMARY KEY,
	session      TEXT NOT NULL,
	seq          BIGINT NOT NULL,
	keyword      TEXT NOT NULL,
	result_count INTEGER NOT NULL,
	failure      TEXT NOT NULL DEFAULT '',
	places       JSONB NOT NULL,
	searched_at  TIMESTAMPTZ NOT NULL
)`

const insertOutcome = `INSERT INTO search_history
	(id, session, seq, keyword, result_count, failure, places, searched_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO NOTHING`

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Store records outcomes. It never reads them back.
type Store struct {
	db    execer
	close func()
}

// New opens a connection pool for databaseURL.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("history: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	return &Store{db: pool, close: pool.Close}, nil
}

// Migrate creates the search_history table if it is missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("history: migrate: %w", err)
	}
	return nil
}

// Record inserts one row for o. Replays of the same outcome are ignored.
func (s *Store) Record(ctx context.Context, o *models.Outcome) error {
	places := o.Places
	if places == nil {
		places = []models.Place{}
	}
	raw, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("history: marshal places: %w", err)
	}

	_, err = s.db.Exec(ctx, insertOutcome,
		o.ID, o.Session, int64(o.Seq), o.Keyword, len(o.Places), o.Failure, raw, o.At)
	if err != nil {
		return fmt.Errorf("history: insert %s: %w", o.ID, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

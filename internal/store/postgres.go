package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS maps (
    name TEXT PRIMARY KEY,
    document JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS visits (
    id TEXT PRIMARY KEY,
    player_id TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    room TEXT NOT NULL,
    map TEXT NOT NULL DEFAULT '',
    joined_at TIMESTAMPTZ NOT NULL,
    left_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visits_player_id ON visits(player_id);
`

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// LoadMap returns the geometry document stored under name.
func (s *PostgresStore) LoadMap(ctx context.Context, name string) ([]byte, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM maps WHERE name = $1`, name).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return doc, err
}

// SaveMap inserts or replaces a geometry document.
func (s *PostgresStore) SaveMap(ctx context.Context, name string, doc []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO maps (name, document, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`,
		name, doc)
	return err
}

// RecordVisit saves a finished visit. An empty ID gets a fresh uuid.
func (s *PostgresStore) RecordVisit(ctx context.Context, v *Visit) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO visits (id, player_id, name, room, map, joined_at, left_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.PlayerID, v.Name, v.Room, v.Map, v.JoinedAt, v.LeftAt)
	return err
}

// VisitsByPlayer returns a player's visits, newest first.
func (s *PostgresStore) VisitsByPlayer(ctx context.Context, playerID string) ([]Visit, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, player_id, name, room, map, joined_at, left_at
		 FROM visits WHERE player_id = $1 ORDER BY joined_at DESC`, playerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanVisit)
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanVisit(row pgx.CollectableRow) (Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.PlayerID, &v.Name, &v.Room, &v.Map, &v.JoinedAt, &v.LeftAt)
	return v, err
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sof1ane/aipply/internal/profile"
)

// SessionDB records completed import sessions in PostgreSQL. It is entirely
// optional: the tool works from the local profile file alone when no
// DATABASE_URL is configured.
type SessionDB struct {
	pool *pgxpool.Pool
}

// Session is one completed import, with the profile snapshot as imported.
type Session struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	ImportedAt time.Time `json:"imported_at"`
}

// ConnectSessions establishes a connection pool and makes sure the sessions
// table exists.
func ConnectSessions(ctx context.Context, databaseURL string) (*SessionDB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &SessionDB{pool: pool}
	if err := db.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the connection pool.
func (db *SessionDB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

func (db *SessionDB) migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS import_sessions (
			id UUID PRIMARY KEY,
			source TEXT NOT NULL,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			snapshot JSONB NOT NULL,
			imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create import_sessions table: %w", err)
	}
	return nil
}

// RecordSession stores a completed import with its profile snapshot and
// returns the session ID.
func (db *SessionDB) RecordSession(ctx context.Context, source string, prof *profile.Profile) (uuid.UUID, error) {
	snapshot, err := json.Marshal(prof)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile snapshot: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO import_sessions (id, source, full_name, email, snapshot)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, source, prof.FullName, prof.Email, snapshot,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record import session: %w", err)
	}
	return id, nil
}

// ListSessions returns recent import sessions, newest first.
func (db *SessionDB) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, source, full_name, email, imported_at
		 FROM import_sessions ORDER BY imported_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list import sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Source, &s.FullName, &s.Email, &s.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// GetSnapshot retrieves the profile snapshot for a session, or nil when the
// session does not exist.
func (db *SessionDB) GetSnapshot(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	var snapshot []byte
	err := db.pool.QueryRow(ctx,
		`SELECT snapshot FROM import_sessions WHERE id = $1`, id,
	).Scan(&snapshot)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session snapshot: %w", err)
	}

	var prof profile.Profile
	if err := json.Unmarshal(snapshot, &prof); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}
	return &prof, nil
}

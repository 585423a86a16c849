package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists sessions in a single table, list columns as TEXT[].
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, strings.TrimSpace(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := initSessionSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func initSessionSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			name TEXT NOT NULL,
			persona_id TEXT NOT NULL DEFAULT '',
			text_type TEXT NOT NULL DEFAULT '',
			text_content TEXT NOT NULL DEFAULT '',
			voices_tested TEXT[] NOT NULL DEFAULT '{}',
			favorites TEXT[] NOT NULL DEFAULT '{}',
			generated_files TEXT[] NOT NULL DEFAULT '{}'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions (created_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init session schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) SaveSession(ctx context.Context, sess Session) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (
			id, created_at, name, persona_id, text_type, text_content,
			voices_tested, favorites, generated_files
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name,
			persona_id=EXCLUDED.persona_id,
			text_type=EXCLUDED.text_type,
			text_content=EXCLUDED.text_content,
			voices_tested=EXCLUDED.voices_tested,
			favorites=EXCLUDED.favorites,
			generated_files=EXCLUDED.generated_files`,
		sess.ID,
		sess.CreatedAt,
		sess.Name,
		sess.PersonaID,
		sess.TextType,
		sess.TextContent,
		sess.VoicesTested,
		sess.Favorites,
		sess.GeneratedFiles,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSession(ctx context.Context, id string) (Session, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, created_at, name, persona_id, text_type, text_content,
			voices_tested, favorites, generated_files
		FROM sessions WHERE id=$1`, id)
	sess, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

func (s *PostgresStore) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, name, persona_id, text_type, text_content,
			voices_tested, favorites, generated_files
		FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanSession(row pgx.Row) (Session, error) {
	var sess Session
	err := row.Scan(
		&sess.ID,
		&sess.CreatedAt,
		&sess.Name,
		&sess.PersonaID,
		&sess.TextType,
		&sess.TextContent,
		&sess.VoicesTested,
		&sess.Favorites,
		&sess.GeneratedFiles,
	)
	return sess, err
}

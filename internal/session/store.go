package session

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("session not found")

// Store persists session records. SaveSession is an upsert; ListSessions
// returns records newest-first.
type Store interface {
	SaveSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
	Close() error
}

// NewStore picks the backing store: Postgres when a database URL is
// configured, per-session JSON files under dir otherwise.
func NewStore(ctx context.Context, dir, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) != "" {
		return NewPostgresStore(ctx, databaseURL)
	}
	return NewFSStore(dir)
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FSStore keeps each session as sessions/<id>/session.json under the output
// directory, matching the on-disk layout operators already know how to poke
// at with a text editor.
type FSStore struct {
	dir string
}

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) SaveSession(_ context.Context, sess Session) error {
	folder := filepath.Join(s.dir, sess.ID)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("create session folder: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	if err := os.WriteFile(filepath.Join(folder, "session.json"), data, 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *FSStore) GetSession(_ context.Context, id string) (Session, error) {
	if filepath.Base(id) != id {
		return Session{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, id, "session.json"))
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session %s: %w", id, err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("parse session %s: %w", id, err)
	}
	return sess, nil
}

func (s *FSStore) ListSessions(ctx context.Context) ([]Session, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read sessions dir: %w", err)
	}
	var out []Session
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sess, err := s.GetSession(ctx, e.Name())
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *FSStore) Close() error { return nil }

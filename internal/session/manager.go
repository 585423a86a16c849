package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns the session lifecycle and the process-wide active-session
// pointer. Every mutation of a session record is a read-modify-write against
// the store, serialized by mu: concurrent batch tasks appending to the same
// session would otherwise lose updates.
type Manager struct {
	mu       sync.Mutex
	store    Store
	activeID string
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Create allocates a new session, persists it and makes it active. The id is
// timestamp-derived for operator readability with a random suffix so two
// creates within the same second cannot collide.
func (m *Manager) Create(ctx context.Context, name, personaID, textType, textContent string, voices, files []string) (Session, error) {
	now := time.Now()
	sess := Session{
		ID:             fmt.Sprintf("session_%s_%s", now.Format("2006-01-02_150405"), uuid.NewString()[:8]),
		CreatedAt:      now.UTC(),
		Name:           name,
		PersonaID:      personaID,
		TextType:       textType,
		TextContent:    textContent,
		VoicesTested:   append([]string{}, voices...),
		Favorites:      []string{},
		GeneratedFiles: append([]string{}, files...),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SaveSession(ctx, sess); err != nil {
		return Session{}, err
	}
	m.activeID = sess.ID
	return sess.Clone(), nil
}

// SetActive points the active-session pointer at an existing session.
// Switching never touches the previously active session's record or assets.
func (m *Manager) SetActive(ctx context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, err := m.store.GetSession(ctx, id)
	if err != nil {
		return Session{}, err
	}
	m.activeID = id
	return sess, nil
}

// ActiveID returns the current active session id, empty when none is active.
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// Get returns one session by id.
func (m *Manager) Get(ctx context.Context, id string) (Session, error) {
	return m.store.GetSession(ctx, id)
}

// List returns all sessions, newest first.
func (m *Manager) List(ctx context.Context) ([]Session, error) {
	return m.store.ListSessions(ctx)
}

// AppendResult records one successful generation against a session. Called
// concurrently by in-flight batch tasks; the manager mutex makes the
// read-modify-write atomic.
func (m *Manager) AppendResult(ctx context.Context, id, voice, filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, err := m.store.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if !contains(sess.GeneratedFiles, filename) {
		sess.GeneratedFiles = append(sess.GeneratedFiles, filename)
	}
	if !contains(sess.VoicesTested, voice) {
		sess.VoicesTested = append(sess.VoicesTested, voice)
	}
	return m.store.SaveSession(ctx, sess)
}

// Append bulk-extends a session's voices and files lists (the PATCH surface).
func (m *Manager) Append(ctx context.Context, id string, voices, files []string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, err := m.store.GetSession(ctx, id)
	if err != nil {
		return Session{}, err
	}
	for _, v := range voices {
		if !contains(sess.VoicesTested, v) {
			sess.VoicesTested = append(sess.VoicesTested, v)
		}
	}
	for _, f := range files {
		if !contains(sess.GeneratedFiles, f) {
			sess.GeneratedFiles = append(sess.GeneratedFiles, f)
		}
	}
	if err := m.store.SaveSession(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess.Clone(), nil
}

// UpdateFavorites replaces a session's favorites list wholesale.
func (m *Manager) UpdateFavorites(ctx context.Context, id string, favorites []string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, err := m.store.GetSession(ctx, id)
	if err != nil {
		return Session{}, err
	}
	sess.Favorites = append([]string{}, favorites...)
	if err := m.store.SaveSession(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess.Clone(), nil
}

// Owners maps every session-owned filename to its session id. Filenames not
// present belong to the legacy bucket.
func (m *Manager) Owners(ctx context.Context) (map[string]string, error) {
	sessions, err := m.store.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	owners := make(map[string]string)
	for _, sess := range sessions {
		for _, f := range sess.GeneratedFiles {
			owners[f] = sess.ID
		}
	}
	return owners, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}
	return NewManager(store)
}

func TestCreateRoundTrip(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	sess, err := m.Create(ctx, "S1", "busy_boss", "demo", "some text", nil, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sess.Name != "S1" {
		t.Fatalf("Name = %q, want S1", sess.Name)
	}
	if len(sess.GeneratedFiles) != 0 || len(sess.Favorites) != 0 {
		t.Fatalf("new session not empty: %+v", sess)
	}
	if m.ActiveID() != sess.ID {
		t.Fatalf("ActiveID() = %q, want %q", m.ActiveID(), sess.ID)
	}

	got, err := m.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "S1" || got.PersonaID != "busy_boss" || got.TextContent != "some text" {
		t.Fatalf("round trip = %+v", got)
	}

	list, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != sess.ID {
		t.Fatalf("List() = %+v", list)
	}
}

func TestCreateIDsUnique(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		sess, err := m.Create(ctx, fmt.Sprintf("s%d", i), "", "demo", "", nil, nil)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[sess.ID] {
			t.Fatalf("duplicate session id %q", sess.ID)
		}
		seen[sess.ID] = true
	}
}

func TestSetActiveUnknown(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	sess, err := m.Create(ctx, "keep", "", "demo", "", nil, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := m.SetActive(ctx, "session_ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetActive(ghost) error = %v, want ErrNotFound", err)
	}
	// Failed activation must not disturb the current pointer.
	if m.ActiveID() != sess.ID {
		t.Fatalf("ActiveID() after failed SetActive = %q, want %q", m.ActiveID(), sess.ID)
	}
}

func TestSetActiveSwitch(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	a, _ := m.Create(ctx, "a", "", "demo", "", nil, nil)
	b, _ := m.Create(ctx, "b", "", "demo", "", nil, nil)
	if m.ActiveID() != b.ID {
		t.Fatalf("ActiveID() = %q, want %q", m.ActiveID(), b.ID)
	}

	got, err := m.SetActive(ctx, a.ID)
	if err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if got.Name != "a" || m.ActiveID() != a.ID {
		t.Fatalf("switch landed on %q / %q", got.Name, m.ActiveID())
	}
}

func TestAppendResultConcurrent(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	sess, err := m.Create(ctx, "stress", "", "demo", "", nil, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = m.AppendResult(ctx, sess.ID,
				fmt.Sprintf("Voice%d", i), fmt.Sprintf("file_%d.wav", i))
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("AppendResult(%d) error = %v", i, err)
		}
	}

	got, err := m.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.GeneratedFiles) != n {
		t.Fatalf("len(generated_files) = %d, want %d (lost update)", len(got.GeneratedFiles), n)
	}
	if len(got.VoicesTested) != n {
		t.Fatalf("len(voices_tested) = %d, want %d", len(got.VoicesTested), n)
	}
}

func TestAppendResultDedup(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	sess, _ := m.Create(ctx, "dedup", "", "demo", "", nil, nil)
	for i := 0; i < 3; i++ {
		if err := m.AppendResult(ctx, sess.ID, "Zephyr", "same.wav"); err != nil {
			t.Fatalf("AppendResult() error = %v", err)
		}
	}
	got, _ := m.Get(ctx, sess.ID)
	if len(got.GeneratedFiles) != 1 || len(got.VoicesTested) != 1 {
		t.Fatalf("dedup failed: files=%v voices=%v", got.GeneratedFiles, got.VoicesTested)
	}
}

func TestUpdateFavorites(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	sess, _ := m.Create(ctx, "fav", "", "demo", "", nil, nil)
	got, err := m.UpdateFavorites(ctx, sess.ID, []string{"a.wav", "b.wav"})
	if err != nil {
		t.Fatalf("UpdateFavorites() error = %v", err)
	}
	if len(got.Favorites) != 2 {
		t.Fatalf("Favorites = %v", got.Favorites)
	}

	got, err = m.UpdateFavorites(ctx, sess.ID, nil)
	if err != nil {
		t.Fatalf("UpdateFavorites(nil) error = %v", err)
	}
	if len(got.Favorites) != 0 {
		t.Fatalf("Favorites after clear = %v", got.Favorites)
	}
}

func TestOwners(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	a, _ := m.Create(ctx, "a", "", "demo", "", nil, []string{"one.wav"})
	b, _ := m.Create(ctx, "b", "", "demo", "", nil, []string{"two.wav", "three.wav"})

	owners, err := m.Owners(ctx)
	if err != nil {
		t.Fatalf("Owners() error = %v", err)
	}
	if owners["one.wav"] != a.ID || owners["two.wav"] != b.ID || owners["three.wav"] != b.ID {
		t.Fatalf("Owners() = %v", owners)
	}
	if _, ok := owners["legacy.wav"]; ok {
		t.Fatalf("unclaimed file appeared in owners map")
	}
}

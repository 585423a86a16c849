package catalog

import (
	"errors"
	"path/filepath"
	"testing"
)

func overlayStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "custom_personas.json"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func TestResolveBuiltin(t *testing.T) {
	s := overlayStore(t)
	p, ok := s.Resolve("busy_boss")
	if !ok {
		t.Fatalf("Resolve(busy_boss) = not found")
	}
	if p.IsCustom {
		t.Fatalf("built-in persona flagged custom")
	}
	if p.ToneInstructions == "" {
		t.Fatalf("built-in persona missing tone instructions")
	}
	if _, ok := s.Resolve("ghost"); ok {
		t.Fatalf("Resolve(ghost) found something")
	}
}

func TestCreateShadowsBuiltin(t *testing.T) {
	s := overlayStore(t)
	custom, err := s.Create(Persona{ID: "busy_boss", Name: "Calmer Boss", ToneInstructions: "a calm, measured voice"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !custom.IsCustom {
		t.Fatalf("created persona not flagged custom")
	}

	got, ok := s.Resolve("busy_boss")
	if !ok || got.Name != "Calmer Boss" {
		t.Fatalf("Resolve after shadow = %+v, %v", got, ok)
	}

	// The merged list carries one entry for the id, the custom one.
	count := 0
	for _, p := range s.List() {
		if p.ID == "busy_boss" {
			count++
			if p.Name != "Calmer Boss" {
				t.Fatalf("List() kept built-in despite shadow: %+v", p)
			}
		}
	}
	if count != 1 {
		t.Fatalf("busy_boss appears %d times in List(), want 1", count)
	}
}

func TestCreateGeneratesID(t *testing.T) {
	s := overlayStore(t)
	p, err := s.Create(Persona{Name: "Nameless"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID == "" {
		t.Fatalf("generated id is empty")
	}
	if _, err := s.Create(Persona{ID: p.ID, Name: "Dup"}); err == nil {
		t.Fatalf("duplicate Create() succeeded")
	}
	if _, err := s.Create(Persona{ID: "no_name"}); err == nil {
		t.Fatalf("Create() without name succeeded")
	}
}

func TestUpdateRequiresOverlayEntry(t *testing.T) {
	s := overlayStore(t)
	if _, err := s.Update("busy_boss", Persona{Name: "x"}); !errors.Is(err, ErrPersonaNotFound) {
		t.Fatalf("Update(built-in) error = %v, want ErrPersonaNotFound", err)
	}

	created, err := s.Create(Persona{Name: "Mutable"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	updated, err := s.Update(created.ID, Persona{Name: "Mutated", ToneInstructions: "whisper"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ID != created.ID || updated.Name != "Mutated" {
		t.Fatalf("Update() = %+v", updated)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := overlayStore(t)
	created, err := s.Create(Persona{Name: "Doomed"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if s.Exists(created.ID) {
		t.Fatalf("persona still resolvable after delete")
	}
	// Deleting again, or deleting the never-existent, is a no-op.
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
	if err := s.Delete("ghost"); err != nil {
		t.Fatalf("Delete(ghost) error = %v", err)
	}
	// Built-ins cannot be deleted.
	if err := s.Delete("busy_boss"); err != nil {
		t.Fatalf("Delete(built-in) error = %v", err)
	}
	if !s.Exists("busy_boss") {
		t.Fatalf("built-in vanished after delete")
	}
}

func TestOverlaySurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom_personas.json")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	created, err := s.Create(Persona{Name: "Persistent", ToneInstructions: "a flat monotone"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() reload error = %v", err)
	}
	got, ok := reloaded.Resolve(created.ID)
	if !ok {
		t.Fatalf("persona missing after reload")
	}
	if got.Name != "Persistent" || !got.IsCustom {
		t.Fatalf("reloaded persona = %+v", got)
	}
}

func TestVoiceExists(t *testing.T) {
	if !VoiceExists("Zephyr") || !VoiceExists("zephyr") {
		t.Fatalf("VoiceExists should match case-insensitively")
	}
	if VoiceExists("NotAVoice") {
		t.Fatalf("VoiceExists(NotAVoice) = true")
	}
}

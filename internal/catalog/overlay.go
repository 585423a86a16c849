package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrPersonaNotFound = errors.New("persona not found")

// Store merges user-created personas over the built-in catalog. The base
// layer is immutable; the overlay is mutable and persisted to a JSON file
// so custom personas survive restarts. An overlay entry shadows a built-in
// entry with the same id.
type Store struct {
	mu      sync.RWMutex
	base    map[string]Persona
	overlay map[string]Persona
	path    string
}

// NewStore loads the custom persona overlay from path, creating the parent
// directory if necessary. A missing file is an empty overlay, not an error.
func NewStore(path string) (*Store, error) {
	s := &Store{
		base:    BuiltinPersonas,
		overlay: make(map[string]Persona),
		path:    path,
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create persona dir: %w", err)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read personas: %w", err)
	}
	var custom []Persona
	if err := json.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("parse personas: %w", err)
	}
	for _, p := range custom {
		p.IsCustom = true
		s.overlay[p.ID] = p
	}
	return s, nil
}

// Resolve looks up a persona by id, overlay first, then the built-in base.
func (s *Store) Resolve(id string) (Persona, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.overlay[id]; ok {
		return p, true
	}
	p, ok := s.base[id]
	return p, ok
}

// Exists reports whether id resolves to any persona. Callers holding a
// selected persona id use this after deletes to notice dangling selections.
func (s *Store) Exists(id string) bool {
	_, ok := s.Resolve(id)
	return ok
}

// List returns the merged catalog, custom entries shadowing built-ins,
// ordered by id for stable output.
func (s *Store) List() []Persona {
	s.mu.RLock()
	defer s.mu.RUnlock()
	merged := make(map[string]Persona, len(s.base)+len(s.overlay))
	for id, p := range s.base {
		merged[id] = p
	}
	for id, p := range s.overlay {
		merged[id] = p
	}
	out := make([]Persona, 0, len(merged))
	for _, p := range merged {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create adds a custom persona. An empty id gets a generated one; an id that
// matches a built-in is allowed and shadows it.
func (s *Store) Create(p Persona) (Persona, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = "custom_" + uuid.NewString()[:8]
	}
	if strings.TrimSpace(p.Name) == "" {
		return Persona{}, errors.New("persona name is required")
	}
	p.IsCustom = true

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.overlay[p.ID]; exists {
		return Persona{}, fmt.Errorf("persona %q already exists", p.ID)
	}
	s.overlay[p.ID] = p
	if err := s.persistLocked(); err != nil {
		delete(s.overlay, p.ID)
		return Persona{}, err
	}
	return p, nil
}

// Update replaces an existing custom persona. Built-in entries cannot be
// updated in place; shadow them with Create instead.
func (s *Store) Update(id string, p Persona) (Persona, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.overlay[id]
	if !ok {
		return Persona{}, fmt.Errorf("update %q: %w", id, ErrPersonaNotFound)
	}
	p.ID = id
	p.IsCustom = true
	s.overlay[id] = p
	if err := s.persistLocked(); err != nil {
		s.overlay[id] = prev
		return Persona{}, err
	}
	return p, nil
}

// Delete removes a custom persona. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.overlay[id]
	if !ok {
		return nil
	}
	delete(s.overlay, id)
	if err := s.persistLocked(); err != nil {
		s.overlay[id] = prev
		return err
	}
	return nil
}

func (s *Store) persistLocked() error {
	custom := make([]Persona, 0, len(s.overlay))
	for _, p := range s.overlay {
		custom = append(custom, p)
	}
	sort.Slice(custom, func(i, j int) bool { return custom[i].ID < custom[j].ID })
	data, err := json.MarshalIndent(custom, "", "  ")
	if err != nil {
		return fmt.Errorf("encode personas: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write personas: %w", err)
	}
	return nil
}

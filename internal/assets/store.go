package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

var ErrAssetNotFound = errors.New("asset not found")

// Asset describes one persisted audio artifact.
type Asset struct {
	Filename   string `json:"filename"`
	Voice      string `json:"voice"`
	Persona    string `json:"persona"`
	Timestamp  string `json:"timestamp"`
	SizeBytes  int64  `json:"size_bytes"`
	IsFavorite bool   `json:"is_favorite"`
	SessionID  string `json:"session_id,omitempty"`
}

// Store persists audio payloads and their metadata sidecars under a flat
// output directory with deterministic names, and owns the canonical
// favorites set. All disk mutations are serialized by a single mutex; the
// writes themselves are the only slow part and they happen off any lock a
// batch task could contend on.
type Store struct {
	dir     string
	favPath string

	mu        sync.Mutex
	favorites map[string]bool
	lastStamp string
	lastSeq   int
}

// NewStore opens (creating if needed) the output directory and loads the
// favorites set.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	s := &Store{
		dir:       dir,
		favPath:   filepath.Join(dir, "favorites.json"),
		favorites: make(map[string]bool),
	}
	data, err := os.ReadFile(s.favPath)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	var favs []string
	if err := json.Unmarshal(data, &favs); err != nil {
		return nil, fmt.Errorf("parse favorites: %w", err)
	}
	for _, f := range favs {
		s.favorites[f] = true
	}
	return s, nil
}

// Dir returns the output directory the store writes into.
func (s *Store) Dir() string { return s.dir }

// Save writes the audio payload and its sidecar under a fresh deterministic
// name <timestamp>_<voice>_<persona> and returns the asset descriptor.
// Persona is the display name ("default" when none); spaces become
// underscores so the name stays parseable. Two saves for the same
// voice+persona within one second get a monotonic "-N" suffix on the time
// segment instead of colliding.
func (s *Store) Save(voice, persona string, wav []byte, meta Metadata) (Asset, error) {
	if persona == "" {
		persona = "default"
	}
	persona = strings.ReplaceAll(persona, " ", "_")

	base, stamp := s.reserveName(voice, persona)
	audioPath := filepath.Join(s.dir, base+".wav")
	metaPath := filepath.Join(s.dir, base+".txt")

	if err := os.WriteFile(audioPath, wav, 0o644); err != nil {
		return Asset{}, fmt.Errorf("write audio %s: %w", base, err)
	}
	meta.GeneratedAt = stamp
	if err := os.WriteFile(metaPath, []byte(meta.Format()), 0o644); err != nil {
		return Asset{}, fmt.Errorf("write metadata %s: %w", base, err)
	}

	return Asset{
		Filename:   base + ".wav",
		Voice:      voice,
		Persona:    persona,
		Timestamp:  stamp,
		SizeBytes:  int64(len(wav)),
		IsFavorite: s.IsFavorite(base + ".wav"),
	}, nil
}

// reserveName hands out a unique base name. The sequence counter resets
// every second, so suffixes only appear on genuine same-second collisions.
func (s *Store) reserveName(voice, persona string) (base, stamp string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp = time.Now().Format(timestampLayout)
	if stamp == s.lastStamp {
		s.lastSeq++
	} else {
		s.lastStamp = stamp
		s.lastSeq = 0
	}

	segment := stamp
	if s.lastSeq > 0 {
		segment = fmt.Sprintf("%s-%d", stamp, s.lastSeq+1)
	}
	base = fmt.Sprintf("%s_%s_%s", segment, voice, persona)

	// Disk may already hold a same-named file from a previous run.
	for {
		if _, err := os.Stat(filepath.Join(s.dir, base+".wav")); errors.Is(err, os.ErrNotExist) {
			break
		}
		s.lastSeq++
		segment = fmt.Sprintf("%s-%d", stamp, s.lastSeq+1)
		base = fmt.Sprintf("%s_%s_%s", segment, voice, persona)
	}
	return base, segment
}

// List returns every audio asset in the output directory, newest first.
// Assets with a sidecar get their metadata from it; the rest fall back to
// filename parsing.
func (s *Store) List() ([]Asset, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read output dir: %w", err)
	}

	var out []Asset
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".wav") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		a := Asset{
			Filename:   e.Name(),
			SizeBytes:  info.Size(),
			IsFavorite: s.IsFavorite(e.Name()),
		}
		meta, err := s.sidecar(e.Name())
		if err == nil {
			a.Voice = meta.Voice
			a.Persona = meta.Persona
			a.Timestamp = meta.GeneratedAt
		} else {
			a.Timestamp, a.Voice, a.Persona = ParseName(e.Name())
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename > out[j].Filename })
	return out, nil
}

// ToggleFavorite flips membership of filename in the favorites set and
// returns the new state. The relation is independent of file existence, so
// toggling a filename with no file on disk still succeeds.
func (s *Store) ToggleFavorite(filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.favorites[filename] {
		delete(s.favorites, filename)
	} else {
		s.favorites[filename] = true
	}
	if err := s.persistFavoritesLocked(); err != nil {
		return false, err
	}
	return s.favorites[filename], nil
}

// SetFavorite forces membership to fav. Used when a session's favorites
// view is replaced wholesale.
func (s *Store) SetFavorite(filename string, fav bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fav == s.favorites[filename] {
		return nil
	}
	if fav {
		s.favorites[filename] = true
	} else {
		delete(s.favorites, filename)
	}
	return s.persistFavoritesLocked()
}

// IsFavorite reports membership in the favorites set.
func (s *Store) IsFavorite(filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites[filename]
}

// Favorites returns the favorites set sorted for stable output.
func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.favorites))
	for f := range s.favorites {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (s *Store) persistFavoritesLocked() error {
	favs := make([]string, 0, len(s.favorites))
	for f := range s.favorites {
		favs = append(favs, f)
	}
	sort.Strings(favs)
	data, err := json.Marshal(favs)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := os.WriteFile(s.favPath, data, 0o644); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}

// ReadMetadata returns the sidecar contents for an audio filename. When the
// sidecar is missing the metadata is derived from the filename segments
// instead; losing a sidecar degrades the detail, not the operation.
func (s *Store) ReadMetadata(filename string) (string, error) {
	data, err := os.ReadFile(s.sidecarPath(filename))
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read metadata %s: %w", filename, err)
	}
	return SyntheticMetadata(filename).Format(), nil
}

// AudioPath resolves filename to its on-disk path, rejecting anything that
// escapes the output directory or does not exist.
func (s *Store) AudioPath(filename string) (string, error) {
	if filepath.Base(filename) != filename {
		return "", fmt.Errorf("%q: %w", filename, ErrAssetNotFound)
	}
	p := filepath.Join(s.dir, filename)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("%q: %w", filename, ErrAssetNotFound)
	}
	return p, nil
}

// MigrateSidecars writes a synthetic sidecar for every audio file that lost
// its own, so listings stop taking the fallback path. Returns how many were
// written.
func (s *Store) MigrateSidecars() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read output dir: %w", err)
	}
	written := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".wav") {
			continue
		}
		metaPath := s.sidecarPath(e.Name())
		if _, err := os.Stat(metaPath); err == nil {
			continue
		}
		meta := SyntheticMetadata(e.Name())
		if err := os.WriteFile(metaPath, []byte(meta.Format()), 0o644); err != nil {
			return written, fmt.Errorf("write migrated sidecar for %s: %w", e.Name(), err)
		}
		written++
	}
	return written, nil
}

func (s *Store) sidecar(filename string) (Metadata, error) {
	data, err := os.ReadFile(s.sidecarPath(filename))
	if err != nil {
		return Metadata{}, err
	}
	return ParseSidecar(string(data)), nil
}

func (s *Store) sidecarPath(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return filepath.Join(s.dir, stem+".txt")
}

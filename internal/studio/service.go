package studio

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/antoniostano/voicelab/internal/assets"
	"github.com/antoniostano/voicelab/internal/audio"
	"github.com/antoniostano/voicelab/internal/catalog"
	"github.com/antoniostano/voicelab/internal/observability"
	"github.com/antoniostano/voicelab/internal/session"
	"github.com/antoniostano/voicelab/internal/tts"
)

// GenerateRequest is one synthesis request for a single voice.
type GenerateRequest struct {
	Voice     string    `json:"voice"`
	Text      string    `json:"text"`
	PersonaID string    `json:"persona_id,omitempty"`
	Model     tts.Model `json:"model,omitempty"`
}

// Result reports the outcome of one generation item. Exactly one of the
// success fields or Error is populated.
type Result struct {
	Success         bool    `json:"success"`
	FilePath        string  `json:"file_path,omitempty"`
	MetadataPath    string  `json:"metadata_path,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// Service wires the catalog, provider, asset store and session manager into
// the operation surface the transport exposes. The active session is never
// consulted here: callers resolve it at the boundary and pass an explicit
// session id (empty means the legacy bucket).
type Service struct {
	synth           tts.Synthesizer
	personas        *catalog.Store
	store           *assets.Store
	sessions        *session.Manager
	metrics         *observability.Metrics
	log             *zap.SugaredLogger
	concurrency     int
	providerTimeout time.Duration
}

func New(
	synth tts.Synthesizer,
	personas *catalog.Store,
	store *assets.Store,
	sessions *session.Manager,
	metrics *observability.Metrics,
	log *zap.SugaredLogger,
	concurrency int,
	providerTimeout time.Duration,
) *Service {
	if concurrency < 1 {
		concurrency = 5
	}
	return &Service{
		synth:           synth,
		personas:        personas,
		store:           store,
		sessions:        sessions,
		metrics:         metrics,
		log:             log,
		concurrency:     concurrency,
		providerTimeout: providerTimeout,
	}
}

// Provider names the configured speech backend.
func (s *Service) Provider() string { return s.synth.Name() }

// Personas exposes the persona overlay store for the CRUD surface.
func (s *Service) Personas() *catalog.Store { return s.personas }

// Sessions exposes the session manager for the session surface.
func (s *Service) Sessions() *session.Manager { return s.sessions }

// Generate runs a single synthesis. Validation failures return an error;
// provider and persistence failures are folded into the Result like any
// batch item.
func (s *Service) Generate(ctx context.Context, sessionID string, req GenerateRequest) (Result, error) {
	req.Model = defaultModel(req.Model)
	if err := s.validateItem(req); err != nil {
		return Result{}, err
	}
	if err := s.checkSession(ctx, sessionID); err != nil {
		return Result{}, err
	}
	return s.executeItem(ctx, sessionID, req), nil
}

func defaultModel(m tts.Model) tts.Model {
	if m == "" {
		return tts.ModelFlash
	}
	return m
}

func (s *Service) validateItem(req GenerateRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return validationErrorf("text must not be empty")
	}
	if !catalog.VoiceExists(req.Voice) {
		return validationErrorf("unknown voice %q", req.Voice)
	}
	if req.PersonaID != "" && !s.personas.Exists(req.PersonaID) {
		return validationErrorf("unknown persona %q", req.PersonaID)
	}
	if !req.Model.Valid() {
		return validationErrorf("unknown model %q", req.Model)
	}
	return nil
}

func (s *Service) checkSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	_, err := s.sessions.Get(ctx, sessionID)
	return err
}

// executeItem performs one provider call plus its persistence side effects.
// Every failure is converted into a failed Result; nothing here may abort a
// sibling batch item.
func (s *Service) executeItem(ctx context.Context, sessionID string, req GenerateRequest) Result {
	personaName := "default"
	tone := ""
	if req.PersonaID != "" {
		if p, ok := s.personas.Resolve(req.PersonaID); ok {
			personaName = p.Name
			tone = p.ToneInstructions
		}
	}
	prompt := tts.ComposePrompt(strings.TrimSpace(req.Text), tone)

	callCtx := ctx
	if s.providerTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.providerTimeout)
		defer cancel()
	}

	wav, err := s.synth.Synthesize(callCtx, req.Voice, prompt, req.Model)
	if err != nil {
		return s.failItem(req.Voice, "synthesize", err)
	}

	asset, err := s.store.Save(req.Voice, personaName, wav, assets.Metadata{
		Voice:            req.Voice,
		Persona:          personaName,
		Model:            string(req.Model),
		Text:             strings.TrimSpace(req.Text),
		ToneInstructions: tone,
	})
	if err != nil {
		return s.failItem(req.Voice, "persist", err)
	}

	if sessionID != "" {
		if err := s.sessions.AppendResult(ctx, sessionID, req.Voice, asset.Filename); err != nil {
			return s.failItem(req.Voice, "session append", err)
		}
	}

	s.metrics.GenerationsTotal.WithLabelValues(s.synth.Name(), "success").Inc()
	stem := strings.TrimSuffix(asset.Filename, ".wav")
	return Result{
		Success:         true,
		FilePath:        asset.Filename,
		MetadataPath:    stem + ".txt",
		DurationSeconds: audio.WAVDuration(wav),
	}
}

func (s *Service) failItem(voice, stage string, err error) Result {
	s.metrics.GenerationsTotal.WithLabelValues(s.synth.Name(), "error").Inc()
	s.log.Warnw("generation failed", "voice", voice, "stage", stage, "error", err)
	return Result{Error: err.Error()}
}

// ScopeKind selects which slice of the asset collection a listing covers.
type ScopeKind string

const (
	ScopeAll     ScopeKind = "all"
	ScopeLegacy  ScopeKind = "legacy"
	ScopeSession ScopeKind = "session"
)

// Scope is a listing filter. SessionID is required for ScopeSession.
type Scope struct {
	Kind      ScopeKind
	SessionID string
}

// CreateSession opens a new session and makes it active.
func (s *Service) CreateSession(ctx context.Context, name, personaID, textType, textContent string, voices, files []string) (session.Session, error) {
	sess, err := s.sessions.Create(ctx, name, personaID, textType, textContent, voices, files)
	if err != nil {
		return session.Session{}, err
	}
	s.metrics.SessionsCreated.Inc()
	s.log.Infow("session created", "id", sess.ID, "name", sess.Name)
	return sess, nil
}

// ListAssets returns assets in scope, each annotated with its owning session
// id when one exists. Legacy assets are those no session claims.
func (s *Service) ListAssets(ctx context.Context, scope Scope) ([]assets.Asset, error) {
	all, err := s.store.List()
	if err != nil {
		return nil, err
	}
	owners, err := s.sessions.Owners(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		all[i].SessionID = owners[all[i].Filename]
	}

	switch scope.Kind {
	case ScopeAll, "":
		return all, nil
	case ScopeLegacy:
		var out []assets.Asset
		for _, a := range all {
			if a.SessionID == "" {
				out = append(out, a)
			}
		}
		return out, nil
	case ScopeSession:
		if _, err := s.sessions.Get(ctx, scope.SessionID); err != nil {
			return nil, err
		}
		var out []assets.Asset
		for _, a := range all {
			if a.SessionID == scope.SessionID {
				out = append(out, a)
			}
		}
		return out, nil
	default:
		return nil, validationErrorf("unknown scope %q", scope.Kind)
	}
}

// FavoriteAssets lists assets currently in the favorites set.
func (s *Service) FavoriteAssets(ctx context.Context) ([]assets.Asset, error) {
	all, err := s.ListAssets(ctx, Scope{Kind: ScopeAll})
	if err != nil {
		return nil, err
	}
	var out []assets.Asset
	for _, a := range all {
		if a.IsFavorite {
			out = append(out, a)
		}
	}
	return out, nil
}

// ToggleFavorite flips the canonical favorite flag for a filename.
func (s *Service) ToggleFavorite(filename string) (bool, error) {
	fav, err := s.store.ToggleFavorite(filename)
	if err != nil {
		return false, err
	}
	s.metrics.FavoriteToggles.Inc()
	return fav, nil
}

// ReadMetadata returns sidecar text, synthesized from the filename when the
// sidecar is gone.
func (s *Service) ReadMetadata(filename string) (string, error) {
	return s.store.ReadMetadata(filename)
}

// AudioPath resolves a filename for file serving.
func (s *Service) AudioPath(filename string) (string, error) {
	return s.store.AudioPath(filename)
}

// UpdateSessionFavorites replaces the session's favorites view and
// reconciles the canonical per-asset favorites set: named files become
// favorites, the session's other generated files stop being favorites.
// Files outside the session are left alone.
func (s *Service) UpdateSessionFavorites(ctx context.Context, sessionID string, favorites []string) (session.Session, error) {
	sess, err := s.sessions.UpdateFavorites(ctx, sessionID, favorites)
	if err != nil {
		return session.Session{}, err
	}
	wanted := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		wanted[f] = true
		if err := s.store.SetFavorite(f, true); err != nil {
			return session.Session{}, err
		}
	}
	for _, f := range sess.GeneratedFiles {
		if wanted[f] {
			continue
		}
		if err := s.store.SetFavorite(f, false); err != nil {
			return session.Session{}, err
		}
	}
	return sess, nil
}

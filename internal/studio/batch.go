package studio

import (
	"context"
	"sync"
	"time"

	"github.com/antoniostano/voicelab/internal/tts"
)

// BatchRequest asks for the same text to be synthesized across several
// voices. Concurrency 0 means the service default.
type BatchRequest struct {
	Voices      []string  `json:"voices"`
	Text        string    `json:"text"`
	PersonaID   string    `json:"persona_id,omitempty"`
	Model       tts.Model `json:"model,omitempty"`
	Concurrency int       `json:"concurrency,omitempty"`
}

// RunBatch fans the request out over a bounded worker pool and blocks until
// every item has finished. The returned slice always has the same length and
// order as req.Voices: results[i] belongs to req.Voices[i] no matter when it
// completed. Item failures land in their own slot and never disturb
// siblings; only validation can fail the call itself.
func (s *Service) RunBatch(ctx context.Context, sessionID string, req BatchRequest) ([]Result, error) {
	req.Model = defaultModel(req.Model)
	if len(req.Voices) == 0 {
		return nil, validationErrorf("voices must not be empty")
	}
	for _, voice := range req.Voices {
		if err := s.validateItem(GenerateRequest{
			Voice:     voice,
			Text:      req.Text,
			PersonaID: req.PersonaID,
			Model:     req.Model,
		}); err != nil {
			return nil, err
		}
	}
	if err := s.checkSession(ctx, sessionID); err != nil {
		return nil, err
	}

	limit := req.Concurrency
	if limit < 1 {
		limit = s.concurrency
	}

	started := time.Now()
	results := make([]Result, len(req.Voices))

	var wg sync.WaitGroup
	slots := make(chan struct{}, limit)
	for i, voice := range req.Voices {
		wg.Add(1)
		go func(idx int, voice string) {
			defer wg.Done()
			slots <- struct{}{}
			defer func() { <-slots }()

			results[idx] = s.executeItem(ctx, sessionID, GenerateRequest{
				Voice:     voice,
				Text:      req.Text,
				PersonaID: req.PersonaID,
				Model:     req.Model,
			})
		}(i, voice)
	}
	wg.Wait()

	s.metrics.ObserveBatch(len(req.Voices), time.Since(started))
	return results, nil
}

// Succeeded counts successful items in a result list.
func Succeeded(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}

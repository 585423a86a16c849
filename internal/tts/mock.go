package tts

import (
	"context"
	"sync"
	"time"

	"github.com/antoniostano/voicelab/internal/audio"
)

// MockProvider is a deterministic local provider used when no API key is
// configured, and by tests that need failure injection and concurrency
// instrumentation.
type MockProvider struct {
	// Latency is how long each call pretends to spend at the provider.
	Latency time.Duration
	// FailFor maps voice names to errors; a listed voice always fails.
	FailFor map[string]error

	mu         sync.Mutex
	open       int
	maxOpen    int
	totalCalls int
}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) Name() string { return "mock" }

func (p *MockProvider) Synthesize(ctx context.Context, voice, prompt string, model Model) ([]byte, error) {
	p.mu.Lock()
	p.open++
	if p.open > p.maxOpen {
		p.maxOpen = p.open
	}
	p.totalCalls++
	failErr := p.FailFor[voice]
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.open--
		p.mu.Unlock()
	}()

	if p.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.Latency):
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failErr != nil {
		return nil, failErr
	}

	// A quarter second of silence keeps downstream duration math honest.
	pcm := make([]byte, audio.DefaultPCM.SampleRate/2)
	return audio.EncodeWAV(pcm, audio.DefaultPCM)
}

// MaxOpenCalls reports the highest number of concurrently open Synthesize
// calls observed so far.
func (p *MockProvider) MaxOpenCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxOpen
}

// Calls reports the total number of Synthesize calls.
func (p *MockProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalCalls
}

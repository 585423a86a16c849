package studio

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/antoniostano/voicelab/internal/assets"
	"github.com/antoniostano/voicelab/internal/catalog"
	"github.com/antoniostano/voicelab/internal/observability"
	"github.com/antoniostano/voicelab/internal/session"
	"github.com/antoniostano/voicelab/internal/tts"
)

// Prometheus registration is process-global, so every test service gets its
// own metrics namespace.
var metricsSeq atomic.Int64

func newTestService(t *testing.T, mock *tts.MockProvider, concurrency int) (*Service, *session.Manager) {
	t.Helper()
	dir := t.TempDir()

	store, err := assets.NewStore(filepath.Join(dir, "output"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	personas, err := catalog.NewStore(filepath.Join(dir, "data", "custom_personas.json"))
	if err != nil {
		t.Fatalf("catalog.NewStore() error = %v", err)
	}
	sessionStore, err := session.NewFSStore(filepath.Join(dir, "output", "sessions"))
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}
	sessions := session.NewManager(sessionStore)
	metrics := observability.NewMetrics(fmt.Sprintf("test_studio_%d", metricsSeq.Add(1)))
	svc := New(mock, personas, store, sessions, metrics, zap.NewNop().Sugar(), concurrency, 0)
	return svc, sessions
}

func TestRunBatchPreservesOrder(t *testing.T) {
	mock := tts.NewMockProvider()
	mock.FailFor = map[string]error{
		"Puck": errors.New("provider exploded"),
		"Kore": errors.New("provider exploded"),
	}
	svc, _ := newTestService(t, mock, 3)

	voices := []string{"Zephyr", "Puck", "Charon", "Kore", "Fenrir"}
	results, err := svc.RunBatch(context.Background(), "", BatchRequest{
		Voices: voices,
		Text:   "hello there",
	})
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if len(results) != len(voices) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(voices))
	}
	for i, voice := range voices {
		wantFail := mock.FailFor[voice] != nil
		if results[i].Success == wantFail {
			t.Fatalf("results[%d] (%s) success = %v, want %v", i, voice, results[i].Success, !wantFail)
		}
		if results[i].Success && results[i].FilePath == "" {
			t.Fatalf("results[%d] (%s) missing file_path", i, voice)
		}
		if !results[i].Success && results[i].Error == "" {
			t.Fatalf("results[%d] (%s) missing error", i, voice)
		}
	}
}

func TestRunBatchConcurrencyLimit(t *testing.T) {
	voices := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		voices = append(voices, catalog.Voices[i%len(catalog.Voices)].Name)
	}

	for _, limit := range []int{1, 5, 30} {
		mock := tts.NewMockProvider()
		mock.Latency = 5 * time.Millisecond
		svc, _ := newTestService(t, mock, 5)

		results, err := svc.RunBatch(context.Background(), "", BatchRequest{
			Voices:      voices,
			Text:        "concurrency probe",
			Concurrency: limit,
		})
		if err != nil {
			t.Fatalf("limit %d: RunBatch() error = %v", limit, err)
		}
		if len(results) != len(voices) {
			t.Fatalf("limit %d: len(results) = %d, want %d", limit, len(results), len(voices))
		}
		if got := mock.MaxOpenCalls(); got > limit {
			t.Fatalf("limit %d: max open provider calls = %d, want <= %d", limit, got, limit)
		}
		if got := mock.Calls(); got != len(voices) {
			t.Fatalf("limit %d: provider calls = %d, want %d", limit, got, len(voices))
		}
	}
}

func TestRunBatchPartialFailure(t *testing.T) {
	mock := tts.NewMockProvider()
	mock.FailFor = map[string]error{"Puck": errors.New("quota exceeded")}
	svc, sessions := newTestService(t, mock, 5)

	sess, err := sessions.Create(context.Background(), "S1", "", "demo", "text", nil, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	results, err := svc.RunBatch(context.Background(), sess.ID, BatchRequest{
		Voices: []string{"Zephyr", "Puck", "Charon"},
		Text:   "partial failure scenario",
	})
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if !results[0].Success || results[1].Success || !results[2].Success {
		t.Fatalf("success pattern = [%v %v %v], want [true false true]",
			results[0].Success, results[1].Success, results[2].Success)
	}
	if results[1].Error == "" {
		t.Fatalf("failed item missing error text")
	}

	got, err := sessions.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.GeneratedFiles) != 2 {
		t.Fatalf("len(generated_files) = %d, want 2", len(got.GeneratedFiles))
	}
	for _, f := range got.GeneratedFiles {
		_, voice, _ := assets.ParseName(f)
		if voice == "Puck" {
			t.Fatalf("failed voice leaked into session files: %v", got.GeneratedFiles)
		}
	}
}

func TestRunBatchNoLostSessionAppends(t *testing.T) {
	// Repeated to give the race a chance to show up if appends are not
	// serialized.
	for round := 0; round < 5; round++ {
		mock := tts.NewMockProvider()
		mock.Latency = time.Millisecond
		svc, sessions := newTestService(t, mock, 5)

		sess, err := sessions.Create(context.Background(), "stress", "", "demo", "text", nil, nil)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		voices := catalog.Voices[:10]
		names := make([]string, len(voices))
		for i, v := range voices {
			names[i] = v.Name
		}

		results, err := svc.RunBatch(context.Background(), sess.ID, BatchRequest{
			Voices:      names,
			Text:        "stress round",
			Concurrency: 5,
		})
		if err != nil {
			t.Fatalf("RunBatch() error = %v", err)
		}
		succeeded := Succeeded(results)
		if succeeded != len(names) {
			t.Fatalf("succeeded = %d, want %d", succeeded, len(names))
		}

		got, err := sessions.Get(context.Background(), sess.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(got.GeneratedFiles) != succeeded {
			t.Fatalf("round %d: len(generated_files) = %d, want %d (lost update)",
				round, len(got.GeneratedFiles), succeeded)
		}
	}
}

func TestRunBatchValidation(t *testing.T) {
	svc, _ := newTestService(t, tts.NewMockProvider(), 5)
	ctx := context.Background()

	cases := []struct {
		name string
		req  BatchRequest
	}{
		{"empty voices", BatchRequest{Text: "hi"}},
		{"empty text", BatchRequest{Voices: []string{"Zephyr"}, Text: "   "}},
		{"unknown voice", BatchRequest{Voices: []string{"NotAVoice"}, Text: "hi"}},
		{"unknown persona", BatchRequest{Voices: []string{"Zephyr"}, Text: "hi", PersonaID: "ghost"}},
		{"unknown model", BatchRequest{Voices: []string{"Zephyr"}, Text: "hi", Model: "gpt-5-tts"}},
	}
	for _, tc := range cases {
		_, err := svc.RunBatch(ctx, "", tc.req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: error = %v, want ValidationError", tc.name, err)
		}
	}

	// Unknown session is a not-found, not a validation failure.
	_, err := svc.RunBatch(ctx, "session_ghost", BatchRequest{Voices: []string{"Zephyr"}, Text: "hi"})
	if !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("unknown session error = %v, want session.ErrNotFound", err)
	}
}

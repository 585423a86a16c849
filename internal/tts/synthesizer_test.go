package tts

import (
	"context"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestComposePrompt(t *testing.T) {
	got := ComposePrompt("hello world", "a hurried, clipped voice")
	want := "Read aloud in a hurried, clipped voice\n\nhello world"
	if got != want {
		t.Fatalf("ComposePrompt() = %q, want %q", got, want)
	}
	if got := ComposePrompt("plain", ""); got != "plain" {
		t.Fatalf("ComposePrompt without tone = %q, want plain text", got)
	}
}

func TestModelValid(t *testing.T) {
	if !ModelFlash.Valid() || !ModelPro.Valid() {
		t.Fatalf("known models reported invalid")
	}
	if Model("gpt-4o-tts").Valid() {
		t.Fatalf("unknown model reported valid")
	}
	if Model("").Valid() {
		t.Fatalf("empty model reported valid")
	}
}

func TestMapVoice(t *testing.T) {
	// Native OpenAI names pass through case-insensitively.
	if got := mapVoice("Nova"); got != openai.VoiceNova {
		t.Fatalf("mapVoice(Nova) = %v", got)
	}
	// Catalog voices map by gender.
	if got := mapVoice("Zephyr"); got != openai.VoiceNova {
		t.Fatalf("mapVoice(Zephyr) = %v, want nova", got)
	}
	if got := mapVoice("Charon"); got != openai.VoiceOnyx {
		t.Fatalf("mapVoice(Charon) = %v, want onyx", got)
	}
	// Everything else falls back to alloy.
	if got := mapVoice("Unmapped"); got != openai.VoiceAlloy {
		t.Fatalf("mapVoice(Unmapped) = %v, want alloy", got)
	}
}

func TestMockProviderTracksConcurrency(t *testing.T) {
	m := NewMockProvider()
	wav, err := m.Synthesize(context.Background(), "Zephyr", "hi", ModelFlash)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !strings.HasPrefix(string(wav[:4]), "RIFF") {
		t.Fatalf("mock payload is not WAV: % x", wav[:4])
	}
	if m.Calls() != 1 || m.MaxOpenCalls() != 1 {
		t.Fatalf("calls = %d, maxOpen = %d", m.Calls(), m.MaxOpenCalls())
	}
}

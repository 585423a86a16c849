package tts

import "context"

// Model selects the provider-side synthesis model.
type Model string

const (
	ModelFlash Model = "gemini-2.5-flash-preview-tts"
	ModelPro   Model = "gemini-2.5-pro-preview-tts"
)

// Valid reports whether m is a model this service knows how to request.
func (m Model) Valid() bool {
	return m == ModelFlash || m == ModelPro
}

// Synthesizer is the single capability the orchestrator needs from a speech
// provider: turn one prompt into one audio artifact. Implementations may be
// slow and may fail; the orchestrator treats each call as terminal for the
// item it belongs to.
type Synthesizer interface {
	// Synthesize returns a complete WAV payload for the prompt.
	Synthesize(ctx context.Context, voice, prompt string, model Model) ([]byte, error)
	// Name identifies the provider in logs, metrics and the auth status.
	Name() string
}

// ComposePrompt prepends a persona tone directive to the text when one is
// selected. The wording matters: providers treat the leading sentence as a
// style instruction, not content to read.
func ComposePrompt(text, toneInstructions string) string {
	if toneInstructions == "" {
		return text
	}
	return "Read aloud in " + toneInstructions + "\n\n" + text
}

package assets

import (
	"path/filepath"
	"strings"
)

const timestampLayout = "2006-01-02_150405"

// Metadata is the human-readable sidecar saved next to every audio file.
// The representation is line-oriented "key: value" text on purpose: sidecars
// are meant to be inspectable and hand-editable.
type Metadata struct {
	Voice            string
	Persona          string
	Model            string
	Text             string
	GeneratedAt      string
	ToneInstructions string
}

// Format renders the sidecar file contents.
func (m Metadata) Format() string {
	var b strings.Builder
	writeLine := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	writeLine("voice", m.Voice)
	writeLine("persona", m.Persona)
	writeLine("model", m.Model)
	writeLine("text", m.Text)
	writeLine("generated_at", m.GeneratedAt)
	writeLine("tone_instructions", m.ToneInstructions)
	return b.String()
}

// ParseSidecar reads the fields this service writes back out of sidecar text.
// Unknown keys are ignored so hand-added annotations survive round trips.
func ParseSidecar(text string) Metadata {
	var m Metadata
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "voice":
			m.Voice = value
		case "persona":
			m.Persona = value
		case "model":
			m.Model = value
		case "text":
			m.Text = value
		case "generated_at":
			m.GeneratedAt = value
		case "tone_instructions":
			m.ToneInstructions = value
		}
	}
	return m
}

// ParseName recovers timestamp, voice and persona from a deterministic
// asset filename such as "2025-01-01_0900_Zephyr_busy_boss.wav". It is the
// degradation path for assets whose sidecar was lost, never the primary
// metadata source.
func ParseName(filename string) (timestamp, voice, persona string) {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	parts := strings.Split(stem, "_")
	voice = "unknown"
	persona = "default"
	if len(parts) >= 2 {
		timestamp = parts[0] + "_" + parts[1]
	}
	if len(parts) >= 3 {
		voice = parts[2]
	}
	if len(parts) >= 4 {
		persona = strings.Join(parts[3:], "_")
	}
	return timestamp, voice, persona
}

// SyntheticMetadata derives sidecar-shaped metadata from a filename alone.
func SyntheticMetadata(filename string) Metadata {
	ts, voice, persona := ParseName(filename)
	return Metadata{Voice: voice, Persona: persona, GeneratedAt: ts}
}

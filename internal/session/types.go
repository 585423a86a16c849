package session

import "time"

// Session groups the artifacts generated while auditioning voices for one
// piece of text. GeneratedFiles is append-only; it records every filename
// produced while this session was active and never shrinks.
type Session struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Name           string    `json:"name"`
	PersonaID      string    `json:"persona_id,omitempty"`
	TextType       string    `json:"text_type"`
	TextContent    string    `json:"text_content"`
	VoicesTested   []string  `json:"voices_tested"`
	Favorites      []string  `json:"favorites"`
	GeneratedFiles []string  `json:"generated_files"`
}

func (s Session) Clone() Session {
	out := s
	out.VoicesTested = append([]string(nil), s.VoicesTested...)
	out.Favorites = append([]string(nil), s.Favorites...)
	out.GeneratedFiles = append([]string(nil), s.GeneratedFiles...)
	return out
}

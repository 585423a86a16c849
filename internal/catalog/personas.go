package catalog

// Persona is a named speaking-style profile applied to generation requests.
// Built-in personas are immutable; custom ones live in the overlay store.
type Persona struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	LocalName        string `json:"local_name,omitempty"`
	Archetype        string `json:"archetype,omitempty"`
	Traits           string `json:"traits,omitempty"`
	ToneInstructions string `json:"tone_instructions"`
	RecommendedVoice string `json:"recommended_voice,omitempty"`
	IsCustom         bool   `json:"is_custom"`
}

// BuiltinPersonas is the immutable base layer of the persona catalog.
var BuiltinPersonas = map[string]Persona{
	"busy_boss": {
		ID:               "busy_boss",
		Name:             "Busy Boss",
		LocalName:        "老闆",
		Archetype:        "executive",
		Traits:           "brisk, decisive, slightly impatient",
		ToneInstructions: "a clipped, fast-paced executive tone, as if dictating between meetings",
		RecommendedVoice: "Kore",
	},
	"warm_teacher": {
		ID:               "warm_teacher",
		Name:             "Warm Teacher",
		LocalName:        "溫柔老師",
		Archetype:        "educator",
		Traits:           "patient, encouraging, articulate",
		ToneInstructions: "a warm, patient teaching voice that pauses to let ideas land",
		RecommendedVoice: "Sulafat",
	},
	"night_dj": {
		ID:               "night_dj",
		Name:             "Night DJ",
		LocalName:        "深夜DJ",
		Archetype:        "broadcaster",
		Traits:           "smooth, intimate, unhurried",
		ToneInstructions: "a low, smooth late-night radio voice with a relaxed rhythm",
		RecommendedVoice: "Algieba",
	},
	"news_anchor": {
		ID:               "news_anchor",
		Name:             "News Anchor",
		LocalName:        "新聞主播",
		Archetype:        "broadcaster",
		Traits:           "neutral, precise, authoritative",
		ToneInstructions: "a crisp, neutral news-desk delivery with even pacing",
		RecommendedVoice: "Charon",
	},
	"street_vendor": {
		ID:               "street_vendor",
		Name:             "Street Vendor",
		LocalName:        "夜市攤販",
		Archetype:        "character",
		Traits:           "loud, cheerful, persuasive",
		ToneInstructions: "an energetic night-market hawker voice, loud and full of enthusiasm",
		RecommendedVoice: "Fenrir",
	},
	"gentle_nurse": {
		ID:               "gentle_nurse",
		Name:             "Gentle Nurse",
		LocalName:        "護理師",
		Archetype:        "caregiver",
		Traits:           "calm, reassuring, soft-spoken",
		ToneInstructions: "a soft, reassuring bedside voice that never rushes",
		RecommendedVoice: "Achernar",
	},
}

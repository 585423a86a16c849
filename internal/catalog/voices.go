package catalog

import "strings"

type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = "unspecified"
)

// Voice describes one prebuilt synthesis voice. The catalog is static
// configuration data; nothing in the service mutates it.
type Voice struct {
	Name           string `json:"name"`
	Characteristic string `json:"characteristic"`
	Gender         Gender `json:"gender"`
}

// Voices is the built-in Gemini TTS voice catalog.
var Voices = []Voice{
	{Name: "Zephyr", Characteristic: "Bright", Gender: GenderFemale},
	{Name: "Puck", Characteristic: "Upbeat", Gender: GenderMale},
	{Name: "Charon", Characteristic: "Informative", Gender: GenderMale},
	{Name: "Kore", Characteristic: "Firm", Gender: GenderFemale},
	{Name: "Fenrir", Characteristic: "Excitable", Gender: GenderMale},
	{Name: "Leda", Characteristic: "Youthful", Gender: GenderFemale},
	{Name: "Orus", Characteristic: "Firm", Gender: GenderMale},
	{Name: "Aoede", Characteristic: "Breezy", Gender: GenderFemale},
	{Name: "Callirrhoe", Characteristic: "Easy-going", Gender: GenderFemale},
	{Name: "Autonoe", Characteristic: "Bright", Gender: GenderFemale},
	{Name: "Enceladus", Characteristic: "Breathy", Gender: GenderMale},
	{Name: "Iapetus", Characteristic: "Clear", Gender: GenderMale},
	{Name: "Umbriel", Characteristic: "Easy-going", Gender: GenderMale},
	{Name: "Algieba", Characteristic: "Smooth", Gender: GenderMale},
	{Name: "Despina", Characteristic: "Smooth", Gender: GenderFemale},
	{Name: "Erinome", Characteristic: "Clear", Gender: GenderFemale},
	{Name: "Algenib", Characteristic: "Gravelly", Gender: GenderMale},
	{Name: "Rasalgethi", Characteristic: "Informative", Gender: GenderMale},
	{Name: "Laomedeia", Characteristic: "Upbeat", Gender: GenderFemale},
	{Name: "Achernar", Characteristic: "Soft", Gender: GenderFemale},
	{Name: "Alnilam", Characteristic: "Firm", Gender: GenderMale},
	{Name: "Schedar", Characteristic: "Even", Gender: GenderMale},
	{Name: "Gacrux", Characteristic: "Mature", Gender: GenderFemale},
	{Name: "Pulcherrima", Characteristic: "Forward", Gender: GenderFemale},
	{Name: "Achird", Characteristic: "Friendly", Gender: GenderMale},
	{Name: "Zubenelgenubi", Characteristic: "Casual", Gender: GenderMale},
	{Name: "Vindemiatrix", Characteristic: "Gentle", Gender: GenderFemale},
	{Name: "Sadachbia", Characteristic: "Lively", Gender: GenderMale},
	{Name: "Sadaltager", Characteristic: "Knowledgeable", Gender: GenderMale},
	{Name: "Sulafat", Characteristic: "Warm", Gender: GenderFemale},
}

// VoiceExists reports whether name is a known catalog voice. Matching is
// case-insensitive; generation requests carry the catalog spelling.
func VoiceExists(name string) bool {
	for _, v := range Voices {
		if strings.EqualFold(v.Name, name) {
			return true
		}
	}
	return false
}

package tts

import (
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/antoniostano/voicelab/internal/catalog"
)

// OpenAIProvider is an alternate speech backend using the OpenAI TTS API.
// Catalog voice names have no direct OpenAI equivalent, so unknown voices
// are mapped onto an OpenAI voice of the same catalog gender.
type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{client: openai.NewClient(apiKey)}
}

func (p *OpenAIProvider) Name() string { return "openai" }

var openAIVoices = map[string]openai.SpeechVoice{
	"alloy":   openai.VoiceAlloy,
	"echo":    openai.VoiceEcho,
	"fable":   openai.VoiceFable,
	"onyx":    openai.VoiceOnyx,
	"nova":    openai.VoiceNova,
	"shimmer": openai.VoiceShimmer,
}

func (p *OpenAIProvider) Synthesize(ctx context.Context, voice, prompt string, model Model) ([]byte, error) {
	speechModel := openai.TTSModel1
	if model == ModelPro {
		speechModel = openai.TTSModel1HD
	}

	res, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          speechModel,
		Input:          prompt,
		Voice:          mapVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatWav,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: create speech: %w", err)
	}
	defer res.Close()

	wav, err := io.ReadAll(res)
	if err != nil {
		return nil, fmt.Errorf("openai: read audio: %w", err)
	}
	if len(wav) == 0 {
		return nil, fmt.Errorf("openai: no audio data received")
	}
	return wav, nil
}

func mapVoice(name string) openai.SpeechVoice {
	if v, ok := openAIVoices[strings.ToLower(name)]; ok {
		return v
	}
	for _, cv := range catalog.Voices {
		if strings.EqualFold(cv.Name, name) {
			if cv.Gender == catalog.GenderFemale {
				return openai.VoiceNova
			}
			return openai.VoiceOnyx
		}
	}
	return openai.VoiceAlloy
}

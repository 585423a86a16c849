package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/antoniostano/voicelab/internal/audio"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiConfig configures the Gemini TTS provider.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// GeminiProvider synthesizes speech through the Gemini generateContent API
// with an audio response modality. Raw PCM from the provider is wrapped into
// a WAV container before being returned.
type GeminiProvider struct {
	cfg        GeminiConfig
	httpClient *http.Client
}

func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = geminiBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &GeminiProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	Temperature        float64            `json:"temperature"`
	ResponseModalities []string           `json:"responseModalities"`
	SpeechConfig       geminiSpeechConfig `json:"speechConfig"`
}

type geminiSpeechConfig struct {
	VoiceConfig geminiVoiceConfig `json:"voiceConfig"`
}

type geminiVoiceConfig struct {
	PrebuiltVoiceConfig geminiPrebuiltVoice `json:"prebuiltVoiceConfig"`
}

type geminiPrebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
}

// Synthesize performs one blocking generateContent call and returns WAV bytes.
func (p *GeminiProvider) Synthesize(ctx context.Context, voice, prompt string, model Model) ([]byte, error) {
	if strings.TrimSpace(p.cfg.APIKey) == "" {
		return nil, errors.New("gemini: GEMINI_API_KEY is not set")
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:        1,
			ResponseModalities: []string{"audio"},
			SpeechConfig: geminiSpeechConfig{
				VoiceConfig: geminiVoiceConfig{
					PrebuiltVoiceConfig: geminiPrebuiltVoice{VoiceName: voice},
				},
			},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := strings.TrimRight(p.cfg.BaseURL, "/") + "/models/" + url.PathEscape(string(model)) + ":generateContent"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.cfg.APIKey)

	res, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: http request: %w", err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<20))
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini: status %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("gemini: invalid response json: %w", err)
	}

	pcm, mimeType, err := collectAudioParts(parsed)
	if err != nil {
		return nil, err
	}

	params := audio.ParseMIME(mimeType)
	wav, err := audio.EncodeWAV(pcm, params)
	if err != nil {
		return nil, fmt.Errorf("gemini: encode wav: %w", err)
	}
	return wav, nil
}

func collectAudioParts(res geminiResponse) ([]byte, string, error) {
	var (
		chunks   [][]byte
		mimeType string
	)
	for _, c := range res.Candidates {
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, "", fmt.Errorf("gemini: decode audio chunk: %w", err)
			}
			chunks = append(chunks, data)
			if mimeType == "" {
				mimeType = part.InlineData.MIMEType
			}
		}
	}
	if len(chunks) == 0 {
		return nil, "", errors.New("gemini: no audio data received")
	}
	return bytes.Join(chunks, nil), mimeType, nil
}

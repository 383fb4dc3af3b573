package voice

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sashabaranov/go-openai"
)

// SpeechClient is the subset of the OpenAI client used for synthesis.
type SpeechClient interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// OpenAIProvider synthesizes speech through the OpenAI TTS endpoint.
type OpenAIProvider struct {
	client SpeechClient
}

// NewOpenAIProvider creates the OpenAI speech provider.
func NewOpenAIProvider(client SpeechClient) *OpenAIProvider {
	return &OpenAIProvider{client: client}
}

// Name implements SpeechProvider.
func (p *OpenAIProvider) Name() string { return "openai" }

// Voices implements SpeechProvider.
func (p *OpenAIProvider) Voices() []Voice {
	return []Voice{
		{ID: "alloy", Name: "Alloy", Gender: "neutral", Language: "en-US"},
		{ID: "echo", Name: "Echo", Gender: "male", Language: "en-US"},
		{ID: "fable", Name: "Fable", Gender: "male", Language: "en-GB"},
		{ID: "onyx", Name: "Onyx", Gender: "male", Language: "en-US"},
		{ID: "nova", Name: "Nova", Gender: "female", Language: "en-US"},
		{ID: "shimmer", Name: "Shimmer", Gender: "female", Language: "en-US"},
	}
}

// Synthesize implements SpeechProvider.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, voiceID, outputPath string) (string, error) {
	if voiceID == "" {
		voiceID = "alloy"
	}

	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.SpeechVoice(voiceID),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return "", fmt.Errorf("openai speech synthesis failed: %w", err)
	}
	defer resp.Close()

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}

	return voiceID, nil
}

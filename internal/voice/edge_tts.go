package voice

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// EdgeTTSProvider shells out to the edge-tts CLI (free Microsoft TTS).
// Useful for local runs without an OpenAI key.
type EdgeTTSProvider struct {
	binaryPath string
}

// NewEdgeTTSProvider creates the provider if the binary is on PATH.
func NewEdgeTTSProvider() (*EdgeTTSProvider, error) {
	path, err := exec.LookPath("edge-tts")
	if err != nil {
		return nil, fmt.Errorf("edge-tts not found: %w (pip install edge-tts)", err)
	}
	return &EdgeTTSProvider{binaryPath: path}, nil
}

// Name implements SpeechProvider.
func (p *EdgeTTSProvider) Name() string { return "edge_tts" }

// Voices implements SpeechProvider.
func (p *EdgeTTSProvider) Voices() []Voice {
	return []Voice{
		{ID: "en-US-GuyNeural", Name: "Guy", Gender: "male", Language: "en-US"},
		{ID: "en-US-JennyNeural", Name: "Jenny", Gender: "female", Language: "en-US"},
		{ID: "en-GB-RyanNeural", Name: "Ryan", Gender: "male", Language: "en-GB"},
	}
}

// Synthesize implements SpeechProvider.
func (p *EdgeTTSProvider) Synthesize(ctx context.Context, text, voiceID, outputPath string) (string, error) {
	if voiceID == "" {
		voiceID = "en-US-GuyNeural"
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.binaryPath,
		"--voice", voiceID,
		"--text", text,
		"--write-media", outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("edge-tts failed: %w, stderr: %s", err, stderr.String())
	}

	return voiceID, nil
}

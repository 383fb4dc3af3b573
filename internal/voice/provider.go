package voice

import (
	"context"
	"fmt"
	"sync"
)

// SpeechProvider synthesizes one script into an audio file on disk.
type SpeechProvider interface {
	// Synthesize writes spoken audio for text to outputPath (mp3) using
	// the given voice, returning the voice actually used.
	Synthesize(ctx context.Context, text, voiceID, outputPath string) (string, error)
	// Name returns the provider id used in requests.
	Name() string
	// Voices lists the voice ids this provider accepts.
	Voices() []Voice
}

// Voice describes one selectable voice.
type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Gender   string `json:"gender,omitempty"`
	Language string `json:"language,omitempty"`
}

// Registry holds the registered speech providers. The first registered
// provider becomes the default.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]SpeechProvider
	defaultID string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]SpeechProvider)}
}

// Register adds a provider under its name.
func (r *Registry) Register(provider SpeechProvider) error {
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}
	name := provider.Name()
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider '%s' already registered", name)
	}
	r.providers[name] = provider

	if r.defaultID == "" {
		r.defaultID = name
	}
	return nil
}

// Get retrieves a provider by name, or the default when name is empty.
func (r *Registry) Get(name string) (SpeechProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.defaultID
	}
	provider, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("voice provider '%s' not found", name)
	}
	return provider, nil
}

// List returns all registered provider names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

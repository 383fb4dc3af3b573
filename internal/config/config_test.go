package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("REDITREND_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnvOrDefault("REDITREND_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnvOrDefault("REDITREND_TEST_MISSING", "fallback"))

	t.Setenv("REDITREND_TEST_EMPTY", "")
	assert.Equal(t, "fallback", GetEnvOrDefault("REDITREND_TEST_EMPTY", "fallback"))
}

func TestGetAPIKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "  sk-abcdefghijklmnopqrstuvwxyz  ")
	t.Setenv("REDDIT_CLIENT_ID", "rid")
	t.Setenv("REDDIT_CLIENT_SECRET", "rsecret")

	keys, err := GetAPIKeys()
	require.NoError(t, err)
	assert.Equal(t, "sk-abcdefghijklmnopqrstuvwxyz", keys.OpenAI)
	assert.Equal(t, "rid", keys.RedditID)
	assert.Equal(t, "rsecret", keys.RedditSecret)
}

func TestGetAPIKeys_InvalidOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "not-a-key")
	_, err := GetAPIKeys()
	assert.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "sk-short")
	_, err = GetAPIKeys()
	assert.Error(t, err)
}

func TestGetAPIKeys_MissingKeyIsNotAnError(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	keys, err := GetAPIKeys()
	require.NoError(t, err)
	assert.Empty(t, keys.OpenAI)
	assert.Error(t, RequireOpenAI(keys))
}

func TestLoadServices_Defaults(t *testing.T) {
	services, err := LoadServices("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001", services.Endpoints.Trends)
	assert.Equal(t, 5*time.Second, services.Timeouts.Health)
}

func TestLoadServices_MissingFileFallsBackToDefaults(t *testing.T) {
	services, err := LoadServices(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", services.Endpoints.Orchestrator)
}

func TestLoadServices_OverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.yaml")
	content := []byte(`
endpoints:
  trends: http://trends.internal:9000
timeouts:
  health: 1s
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	services, err := LoadServices(path)
	require.NoError(t, err)

	// The file overrides only what it names; the rest keeps defaults.
	assert.Equal(t, "http://trends.internal:9000", services.Endpoints.Trends)
	assert.Equal(t, time.Second, services.Timeouts.Health)
	assert.Equal(t, "http://localhost:3002", services.Endpoints.Script)
	assert.Equal(t, 15*time.Minute, services.Timeouts.Video)
}

func TestLoadServices_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoints: [not a map"), 0o644))

	_, err := LoadServices(path)
	assert.Error(t, err)
}

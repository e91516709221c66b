package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 30*time.Second, config.LLM.Timeout)
	assert.Equal(t, 10*time.Minute, config.State.TTL)
	assert.Equal(t, time.Minute, config.State.SweepInterval)
	assert.Equal(t, 100, config.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, config.RateLimit.Window)
	assert.Equal(t, 30, config.RateLimit.HealthRequests)
	assert.Contains(t, config.CORS.DevAllowedOrigins, "http://localhost:5173")
	assert.False(t, config.IsProduction())
}

func TestLoadFromFiles(t *testing.T) {
	path := writeConfig(t, `
environment = "production"

[server]
port = 8080
host = "0.0.0.0"

[llm]
endpoint = "http://localhost:11434/api/generate"
model = "llama3"

[oauth.github]
client_id = "gh-id"
client_secret = "gh-secret"
`)

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, "http://localhost:11434/api/generate", config.LLM.Endpoint)
	assert.Equal(t, "llama3", config.LLM.Model)
	assert.Equal(t, "gh-id", config.OAuth.GitHub.ClientID)
	assert.Equal(t, "gh-secret", config.OAuth.GitHub.ClientSecret)
}

func TestLoadFromFilesLaterFileWins(t *testing.T) {
	first := writeConfig(t, "[server]\nport = 8080\n")
	second := writeConfig(t, "[server]\nport = 9090\n")

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
}

func TestLoadFromFilesMissingFile(t *testing.T) {
	_, err := LoadFromFiles("/does/not/exist.toml")
	require.Error(t, err)
}

func TestLoadFromFilesInvalidTOML(t *testing.T) {
	path := writeConfig(t, "not = [valid")

	_, err := LoadFromFiles(path)
	require.Error(t, err)
}

func TestLoadFromFilesRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "[server]\nport = -1\n")

	_, err := LoadFromFiles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestUnrecognizedEnvironmentLoads(t *testing.T) {
	// Legacy deployments set NODE_ENV values like "staging"; anything
	// other than "production" is treated as non-production.
	t.Setenv("NODE_ENV", "staging")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "staging", config.Environment)
	assert.False(t, config.IsProduction())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PROBO_ENV", "test")
	t.Setenv("PORT", "4000")
	t.Setenv("LLM_ENDPOINT", "http://llm.internal")
	t.Setenv("LLM_MODEL", "mistral")
	t.Setenv("GITHUB_CLIENT_ID", "env-gh-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "env-gh-secret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "test", config.Environment)
	assert.Equal(t, 4000, config.Server.Port)
	assert.Equal(t, "http://llm.internal", config.LLM.Endpoint)
	assert.Equal(t, "mistral", config.LLM.Model)
	assert.Equal(t, "env-gh-id", config.OAuth.GitHub.ClientID)
	assert.Equal(t, "env-gh-secret", config.OAuth.GitHub.ClientSecret)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, config.CORS.AllowedOrigins)
}

func TestEnvOverridesPrefixedNamesWin(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("PROBO_SERVER_PORT", "5000")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 5000, config.Server.Port)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 7070, "127.0.0.1")
	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)

	// Zero values leave the config untouched.
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
}

func TestOAuthClientFor(t *testing.T) {
	config := NewDefaultConfig()
	config.OAuth.Jira = OAuthClientConfig{ClientID: "jira-id", ClientSecret: "jira-secret"}

	assert.Equal(t, "jira-id", config.OAuth.ClientFor("jira").ClientID)
	assert.Equal(t, "jira-id", config.OAuth.ClientFor("JIRA").ClientID)
	assert.Empty(t, config.OAuth.ClientFor("unknown").ClientID)
}

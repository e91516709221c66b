package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	// Environment controls error detail exposure. Only "production" is
	// special; any other value (development, test, staging...) behaves
	// as non-production, matching the legacy NODE_ENV handling.
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Logging     LoggingConfig   `toml:"logging"`
	LLM         LLMConfig       `toml:"llm"`
	OAuth       OAuthConfig     `toml:"oauth"`
	CORS        CORSConfig      `toml:"cors"`
	State       StateConfig     `toml:"state"`
	RateLimit   RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"omitempty,oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output"`                                                 // "stdout", "file"
}

// LLMConfig contains the external LLM backend configuration.
// The adapter runs in mock mode unless both endpoint and model are set.
type LLMConfig struct {
	Endpoint string        `toml:"endpoint"` // HTTP endpoint of the LLM backend
	Model    string        `toml:"model"`    // Model identifier passed to the backend
	Timeout  time.Duration `toml:"timeout" validate:"gt=0"`
}

// OAuthClientConfig holds a client id/secret pair for one integration.
type OAuthClientConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// OAuthConfig holds OAuth client credentials per integration.
// Populated from config files or <PROVIDER>_CLIENT_ID/_CLIENT_SECRET env vars.
type OAuthConfig struct {
	TestRail OAuthClientConfig `toml:"testrail"`
	Jira     OAuthClientConfig `toml:"jira"`
	GitHub   OAuthClientConfig `toml:"github"`
	Figma    OAuthClientConfig `toml:"figma"`
	Notion   OAuthClientConfig `toml:"notion"`
}

// ClientFor returns the credentials configured for an integration type,
// or a zero value when the type carries no configured client.
func (o OAuthConfig) ClientFor(integrationType string) OAuthClientConfig {
	switch strings.ToLower(integrationType) {
	case "testrail":
		return o.TestRail
	case "jira":
		return o.Jira
	case "github":
		return o.GitHub
	case "figma":
		return o.Figma
	case "notion":
		return o.Notion
	default:
		return OAuthClientConfig{}
	}
}

type CORSConfig struct {
	AllowedOrigins    []string `toml:"allowed_origins"`     // Production allow-list
	DevAllowedOrigins []string `toml:"dev_allowed_origins"` // Development allow-list
}

// StateConfig controls the OAuth state-token store lifecycle.
type StateConfig struct {
	TTL           time.Duration `toml:"ttl" validate:"gt=0"`            // Token lifetime (default 10m)
	SweepInterval time.Duration `toml:"sweep_interval" validate:"gt=0"` // Background expiry sweep interval
}

type RateLimitConfig struct {
	Requests       int           `toml:"requests" validate:"gt=0"` // Requests allowed per window
	Window         time.Duration `toml:"window" validate:"gt=0"`
	HealthRequests int           `toml:"health_requests" validate:"gt=0"` // Health endpoint requests per minute
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in probo.toml; technical
// parameters keep their defaults here.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 3000,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		LLM: LLMConfig{
			Timeout: 30 * time.Second,
		},
		CORS: CORSConfig{
			DevAllowedOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:5173",
				"http://127.0.0.1:5173",
			},
		},
		State: StateConfig{
			TTL:           10 * time.Minute,
			SweepInterval: 1 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Requests:       100,
			Window:         15 * time.Minute,
			HealthRequests: 30,
		},
	}
}

// LoadFromFiles loads configuration in priority order:
// defaults -> config file(s) -> environment variables.
// Later files override earlier files. CLI flags are applied
// separately via ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal into config (merges with existing values, later values override)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides.
// PROBO_* names take priority; the legacy deployment names
// (PORT, NODE_ENV, LLM_ENDPOINT, ...) are honored as fallbacks.
func applyEnvOverrides(config *Config) {
	if env := firstEnv("PROBO_ENV", "NODE_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := firstEnv("PROBO_SERVER_PORT", "PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("PROBO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("PROBO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// LLM backend configuration
	if endpoint := firstEnv("PROBO_LLM_ENDPOINT", "LLM_ENDPOINT"); endpoint != "" {
		config.LLM.Endpoint = endpoint
	}
	if model := firstEnv("PROBO_LLM_MODEL", "LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}

	// OAuth client credentials per integration
	applyOAuthEnv(&config.OAuth.TestRail, "TESTRAIL")
	applyOAuthEnv(&config.OAuth.Jira, "JIRA")
	applyOAuthEnv(&config.OAuth.GitHub, "GITHUB")
	applyOAuthEnv(&config.OAuth.Figma, "FIGMA")
	applyOAuthEnv(&config.OAuth.Notion, "NOTION")

	// CORS allow-lists (comma-separated)
	if origins := firstEnv("PROBO_ALLOWED_ORIGINS", "ALLOWED_ORIGINS"); origins != "" {
		config.CORS.AllowedOrigins = splitAndTrim(origins)
	}
	if origins := firstEnv("PROBO_DEV_ALLOWED_ORIGINS", "DEV_ALLOWED_ORIGINS"); origins != "" {
		config.CORS.DevAllowedOrigins = splitAndTrim(origins)
	}
}

func applyOAuthEnv(client *OAuthClientConfig, prefix string) {
	if id := os.Getenv(prefix + "_CLIENT_ID"); id != "" {
		client.ClientID = id
	}
	if secret := os.Getenv(prefix + "_CLIENT_SECRET"); secret != "" {
		client.ClientSecret = secret
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ApplyFlagOverrides applies command-line flag values to the configuration.
// Command-line flags have highest priority.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsProduction reports whether the service runs in production mode.
// Error responses never carry internal details in production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

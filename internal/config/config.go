package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "LESSON_ANALYZER_CONFIG"
	anthropicAPIKeyEnv  = "ANTHROPIC_API_KEY"
	anthropicModelEnv   = "ANTHROPIC_MODEL"
	anthropicBaseURLEnv = "ANTHROPIC_BASE_URL"
	httpAddrEnv         = "HTTP_ADDR"
	logLevelEnv         = "LOG_LEVEL"
)

// APIKeyEnv names the environment variable holding the model credential.
const APIKeyEnv = anthropicAPIKeyEnv

// Config holds high-level settings required across the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Content   ContentConfig   `yaml:"content"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig describes the inbound HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
}

// AnthropicConfig defines how to contact the messages API.
type AnthropicConfig struct {
	BaseURL   string        `yaml:"baseUrl"`
	Model     string        `yaml:"model"`
	APIKey    string        `yaml:"apiKey"`
	Version   string        `yaml:"version"`
	MaxTokens int           `yaml:"maxTokens"`
	Timeout   time.Duration `yaml:"timeout"`
	Retry     RetryConfig   `yaml:"retry"`
}

// RetryConfig bounds retries of transient upstream failures.
// MaxAttempts of 1 disables retrying.
type RetryConfig struct {
	MaxAttempts     int           `yaml:"maxAttempts"`
	InitialInterval time.Duration `yaml:"initialInterval"`
	MaxInterval     time.Duration `yaml:"maxInterval"`
}

// ContentConfig toggles content preparation before prompting.
type ContentConfig struct {
	StripHTML      *bool `yaml:"stripHtml"`
	DetectLanguage *bool `yaml:"detectLanguage"`
}

// HTMLStripping reports whether pasted HTML documents are reduced to text.
// It is off unless set.
func (c ContentConfig) HTMLStripping() bool {
	return c.StripHTML != nil && *c.StripHTML
}

// LanguageDetection reports whether the content language is detected.
func (c ContentConfig) LanguageDetection() bool {
	return c.DetectLanguage == nil || *c.DetectLanguage
}

// LoggingConfig sets the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := Default()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg, err := Parse(raw)
			if err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Parse decodes a YAML document without applying defaults.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(anthropicAPIKeyEnv); v != "" {
		c.Anthropic.APIKey = v
	}

	if v := os.Getenv(anthropicModelEnv); v != "" {
		c.Anthropic.Model = v
	}

	if v := os.Getenv(anthropicBaseURLEnv); v != "" {
		c.Anthropic.BaseURL = v
	}

	if v := os.Getenv(httpAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.MaxBodyBytes > 0 {
		base.Server.MaxBodyBytes = override.Server.MaxBodyBytes
	}
	if override.Server.ShutdownTimeout > 0 {
		base.Server.ShutdownTimeout = override.Server.ShutdownTimeout
	}
	if len(override.Server.AllowedOrigins) > 0 {
		base.Server.AllowedOrigins = override.Server.AllowedOrigins
	}

	if override.Anthropic.BaseURL != "" {
		base.Anthropic.BaseURL = override.Anthropic.BaseURL
	}
	if override.Anthropic.Model != "" {
		base.Anthropic.Model = override.Anthropic.Model
	}
	if override.Anthropic.APIKey != "" {
		base.Anthropic.APIKey = override.Anthropic.APIKey
	}
	if override.Anthropic.Version != "" {
		base.Anthropic.Version = override.Anthropic.Version
	}
	if override.Anthropic.MaxTokens > 0 {
		base.Anthropic.MaxTokens = override.Anthropic.MaxTokens
	}
	if override.Anthropic.Timeout > 0 {
		base.Anthropic.Timeout = override.Anthropic.Timeout
	}
	if override.Anthropic.Retry.MaxAttempts > 0 {
		base.Anthropic.Retry.MaxAttempts = override.Anthropic.Retry.MaxAttempts
	}
	if override.Anthropic.Retry.InitialInterval > 0 {
		base.Anthropic.Retry.InitialInterval = override.Anthropic.Retry.InitialInterval
	}
	if override.Anthropic.Retry.MaxInterval > 0 {
		base.Anthropic.Retry.MaxInterval = override.Anthropic.Retry.MaxInterval
	}

	if override.Content.StripHTML != nil {
		base.Content.StripHTML = override.Content.StripHTML
	}
	if override.Content.DetectLanguage != nil {
		base.Content.DetectLanguage = override.Content.DetectLanguage
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			MaxBodyBytes:    6 << 20,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		Anthropic: AnthropicConfig{
			BaseURL:   "https://api.anthropic.com/v1",
			Model:     "claude-3-5-haiku-latest",
			APIKey:    "",
			Version:   "2023-06-01",
			MaxTokens: 2000,
			Timeout:   60 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     1,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

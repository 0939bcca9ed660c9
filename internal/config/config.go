package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// Precedence order:
// 1. Environment variables (SMARTRESUME_AI_GEMINI_APIKEY, etc.)
// 2. Config file values
// 3. Default values
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Storage       StorageConfig       `mapstructure:"storage"`
	App           AppConfig           `mapstructure:"app"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds the generation settings shared by both providers plus
// per-provider credentials. Provider choice is not configured directly:
// Gemini wins when its key is present, otherwise OpenRouter.
type AIConfig struct {
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`

	Temperature     float32       `mapstructure:"temperature"`
	TopP            float32       `mapstructure:"topP"`
	MaxOutputTokens int32         `mapstructure:"maxOutputTokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxRetries      int           `mapstructure:"maxRetries"`

	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// GeminiConfig holds Gemini credentials and the model fallback chain.
type GeminiConfig struct {
	APIKey         string   `mapstructure:"apiKey"`
	Model          string   `mapstructure:"model"`
	FallbackModels []string `mapstructure:"fallbackModels"`
}

// OpenRouterConfig holds OpenRouter credentials and attribution headers.
type OpenRouterConfig struct {
	APIKey   string `mapstructure:"apiKey"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"baseURL"`
	SiteURL  string `mapstructure:"siteURL"`  // HTTP-Referer header
	SiteName string `mapstructure:"siteName"` // X-Title header
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// StorageConfig holds the embedded database settings.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// ObservabilityConfig holds tracing configuration.
type ObservabilityConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"serviceName"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Set up environment variable handling
	v.SetEnvPrefix("SMARTRESUME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy env names take effect when the prefixed forms are absent.
	if err := v.BindEnv("ai.gemini.apiKey", "SMARTRESUME_AI_GEMINI_APIKEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind gemini api key: %w", err)
	}
	if err := v.BindEnv("ai.openrouter.apiKey", "SMARTRESUME_AI_OPENROUTER_APIKEY", "OPENROUTER_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind openrouter api key: %w", err)
	}

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/smartresume/")
	v.AddConfigPath("$HOME/.smartresume")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration
	v.SetDefault("ai.gemini.apiKey", "")
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.fallbackModels", []string{"gemini-pro"})
	v.SetDefault("ai.openrouter.apiKey", "")
	v.SetDefault("ai.openrouter.model", "openai/gpt-3.5-turbo")
	v.SetDefault("ai.openrouter.baseURL", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.openrouter.siteURL", "https://localhost")
	v.SetDefault("ai.openrouter.siteName", "SmartResume")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.topP", 0.95)
	v.SetDefault("ai.maxOutputTokens", 1024)
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.maxRetries", 3)

	// Circuit Breaker Configuration
	v.SetDefault("ai.circuitBreaker.enabled", true)
	v.SetDefault("ai.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.circuitBreaker.failureThreshold", 0.6)

	// Storage Configuration
	v.SetDefault("storage.path", "smartresume.db")

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "text")
	v.SetDefault("app.supportedFormats", []string{"json", "text"})
	v.SetDefault("app.maxFileSize", 1024*1024) // 1MB

	// Observability Configuration
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "smartresume")
}

// Validate checks if the configuration is valid. A missing API key is
// not an error here: the client reports the no-provider state when a
// generation is actually attempted.
func (c *Config) Validate() error {
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}

	if c.AI.MaxRetries < 0 {
		return fmt.Errorf("AI maxRetries cannot be negative")
	}

	if c.AI.Gemini.Model == "" {
		return fmt.Errorf("gemini model is required")
	}

	if c.AI.OpenRouter.Model == "" {
		return fmt.Errorf("openrouter model is required")
	}

	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	return nil
}

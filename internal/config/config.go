// Package config loads application configuration from environment
// variables, applying defaults and validating the result.
package config

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Retriever RetrieverConfig `mapstructure:"retriever" validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"`
}

// AppConfig contains general application settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// RetrieverConfig tunes retriever behavior shared across implementations.
type RetrieverConfig struct {
	// BackoffSeconds is how long workers wait between rate-limit
	// recovery probes.
	BackoffSeconds int `mapstructure:"backoff_seconds" validate:"gte=1"`
}

// LLMConfig contains settings for the Gemini-backed retriever. The API
// key is only required when that retriever is selected, so it is not
// validated here.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}

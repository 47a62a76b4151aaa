package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Upload   UploadConfig   `mapstructure:"upload" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
// The API only verifies tokens issued elsewhere; no issuance settings live here.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// Supported generation backends.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// LLMConfig contains all settings for the external model provider used
// to generate flashcards.
type LLMConfig struct {
	// Provider selects the generation backend: "groq" (OpenAI-compatible
	// chat completions) or "gemini".
	Provider string `mapstructure:"provider" validate:"required,oneof=groq gemini"`

	// APIKey authenticates against the selected provider.
	APIKey string `mapstructure:"api_key" validate:"required"`

	// ModelName is the fixed model identifier sent with every call.
	ModelName string `mapstructure:"model" validate:"required"`

	// BaseURL overrides the provider endpoint. Only meaningful for the
	// OpenAI-compatible backend; empty selects the Groq default.
	BaseURL string `mapstructure:"base_url"`

	// MaxInputChars bounds the source text embedded in the prompt.
	// Longer inputs are truncated, not rejected.
	MaxInputChars int `mapstructure:"max_input_chars" validate:"required,gt=0"`

	// MaxOutputTokens caps the size of the model response.
	MaxOutputTokens int `mapstructure:"max_output_tokens" validate:"required,gt=0"`

	// Temperature is the sampling temperature for generation.
	Temperature float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`

	// RequestTimeoutSeconds bounds the single provider call per generation.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}

// UploadConfig contains settings for document uploads.
type UploadConfig struct {
	// MaxFileSizeBytes rejects uploads larger than this before extraction.
	MaxFileSizeBytes int64 `mapstructure:"max_file_size_bytes" validate:"required,gt=0"`
}

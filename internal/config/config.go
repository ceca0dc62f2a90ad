// Package config provides application configuration with multi-source
// priority.
//
// Sources (highest to lowest):
//  1. Environment variables (secrets and runtime overrides)
//  2. Config file (./config.yaml or ~/.agrisearch/config.yaml)
//  3. Defaults (the values the knowledge base was tuned with)
//
// Secrets (OPENAI_API_KEY, NONGSARO_API_KEY) are env-only and masked in any
// serialized form of the config.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Sentinel errors for validation failures, checked with errors.Is.
var (
	// ErrMissingAPIKey indicates OPENAI_API_KEY is not set.
	ErrMissingAPIKey = errors.New("missing OpenAI API key")

	// ErrInvalidThreshold indicates the distance threshold is not positive.
	ErrInvalidThreshold = errors.New("invalid distance threshold")

	// ErrInvalidNResults indicates n_results is below min_docs or not positive.
	ErrInvalidNResults = errors.New("invalid n_results")

	// ErrInvalidLimit indicates a limit knob (pdf, context, history) is not positive.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrInvalidStorePath indicates the vector store path is empty.
	ErrInvalidStorePath = errors.New("invalid store path")
)

// Config stores the application configuration. Sensitive fields are masked
// in MarshalJSON.
type Config struct {
	// OpenAI models. The API key is read from OPENAI_API_KEY only.
	OpenAIAPIKey    string `mapstructure:"openai_api_key" json:"openai_api_key"` // SENSITIVE: masked in MarshalJSON
	ChatModel       string `mapstructure:"chat_model" json:"chat_model"`
	EmbeddingModel  string `mapstructure:"embedding_model" json:"embedding_model"`
	ModerationModel string `mapstructure:"moderation_model" json:"moderation_model"`

	// Sentence suggestion completion.
	SuggestModel       string  `mapstructure:"suggest_model" json:"suggest_model"`
	SuggestTemperature float32 `mapstructure:"suggest_temperature" json:"suggest_temperature"`
	SuggestMaxTokens   int     `mapstructure:"suggest_max_tokens" json:"suggest_max_tokens"`

	// Vector store.
	StorePath  string `mapstructure:"store_path" json:"store_path"`
	Collection string `mapstructure:"collection" json:"collection"`

	// Retrieval knobs.
	NResults          int     `mapstructure:"n_results" json:"n_results"`
	DistanceThreshold float64 `mapstructure:"distance_threshold" json:"distance_threshold"`
	MinDocs           int     `mapstructure:"min_docs" json:"min_docs"`
	PDFLimit          int     `mapstructure:"pdf_limit" json:"pdf_limit"`
	ContextLimit      int     `mapstructure:"context_limit" json:"context_limit"`

	// History buffer capacity.
	HistoryLimit int `mapstructure:"history_limit" json:"history_limit"`

	// HTTP server.
	ServerAddr    string  `mapstructure:"server_addr" json:"server_addr"`
	RatePerSecond float64 `mapstructure:"rate_per_second" json:"rate_per_second"`
	RateBurst     int     `mapstructure:"rate_burst" json:"rate_burst"`

	// Farm-tech feed ingestion.
	NongsaroAPIKey  string `mapstructure:"nongsaro_api_key" json:"nongsaro_api_key"` // SENSITIVE: masked in MarshalJSON
	NongsaroBaseURL string `mapstructure:"nongsaro_base_url" json:"nongsaro_base_url"`
	NongsaroReferer string `mapstructure:"nongsaro_referer" json:"nongsaro_referer"`
	FetchPageSize   int    `mapstructure:"fetch_page_size" json:"fetch_page_size"`
	FetchDelayMS    int    `mapstructure:"fetch_delay_ms" json:"fetch_delay_ms"`
	DataDir         string `mapstructure:"data_dir" json:"data_dir"`

	// Logging.
	LogJSON bool `mapstructure:"log_json" json:"log_json"`
}

// Load loads configuration with env > file > defaults priority and validates
// it fail-fast.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".agrisearch"))
	}

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chat_model", "gpt-4.1-mini")
	v.SetDefault("embedding_model", "text-embedding-3-small")
	v.SetDefault("moderation_model", "omni-moderation-latest")

	v.SetDefault("suggest_model", "gpt-4o-mini")
	v.SetDefault("suggest_temperature", 0.7)
	v.SetDefault("suggest_max_tokens", 200)

	v.SetDefault("store_path", "./chroma_db_v1")
	v.SetDefault("collection", "monthfarmtech_v1")

	v.SetDefault("n_results", 15)
	v.SetDefault("distance_threshold", 1.12)
	v.SetDefault("min_docs", 1)
	v.SetDefault("pdf_limit", 3)
	v.SetDefault("context_limit", 1800)

	v.SetDefault("history_limit", 100)

	v.SetDefault("server_addr", "127.0.0.1:8000")
	v.SetDefault("rate_per_second", 10.0)
	v.SetDefault("rate_burst", 20)

	v.SetDefault("nongsaro_base_url", "http://api.nongsaro.go.kr/service/monthFarmTech")
	v.SetDefault("fetch_page_size", 500)
	v.SetDefault("fetch_delay_ms", 500)
	v.SetDefault("data_dir", "./data")

	v.SetDefault("log_json", false)
}

// bindEnvVariables binds the secrets and the operational overrides. The two
// API keys are env-only by design.
func bindEnvVariables(v *viper.Viper) {
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("openai_api_key", "OPENAI_API_KEY")
	mustBind("nongsaro_api_key", "NONGSARO_API_KEY")
	mustBind("nongsaro_referer", "NONGSARO_REFERER")
	mustBind("server_addr", "AGRISEARCH_ADDR")
	mustBind("store_path", "AGRISEARCH_STORE_PATH")
	mustBind("collection", "AGRISEARCH_COLLECTION")
	mustBind("log_json", "AGRISEARCH_LOG_JSON")
}

// Validate checks the knobs the pipeline depends on. The OpenAI key is
// required for every command except version, so it is checked here.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("%w: set OPENAI_API_KEY", ErrMissingAPIKey)
	}
	if c.DistanceThreshold <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, c.DistanceThreshold)
	}
	if c.MinDocs < 1 {
		return fmt.Errorf("%w: min_docs %d", ErrInvalidLimit, c.MinDocs)
	}
	if c.NResults < c.MinDocs {
		return fmt.Errorf("%w: n_results %d below min_docs %d", ErrInvalidNResults, c.NResults, c.MinDocs)
	}
	if c.PDFLimit < 1 {
		return fmt.Errorf("%w: pdf_limit %d", ErrInvalidLimit, c.PDFLimit)
	}
	if c.ContextLimit < 1 {
		return fmt.Errorf("%w: context_limit %d", ErrInvalidLimit, c.ContextLimit)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("%w: history_limit %d", ErrInvalidLimit, c.HistoryLimit)
	}
	if c.StorePath == "" {
		return ErrInvalidStorePath
	}
	return nil
}

// maskedValue replaces secret values in serialized config. Full-width blocks
// avoid accidental substring matches against real secrets.
const maskedValue = "████████"

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return maskedValue
}

// MarshalJSON masks sensitive fields. Update when adding new secrets.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.OpenAIAPIKey = maskSecret(a.OpenAIAPIKey)
	a.NongsaroAPIKey = maskSecret(a.NongsaroAPIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer so accidental printing never leaks secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}

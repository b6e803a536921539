package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
)

// Run modes
const (
	modeRoundtable = "roundtable"
	modeOpen       = "open"
	modeAnonymous  = "anonymous"
)

var errMissingCredential = errors.New("missing API credential")

// AppConfig holds all runner configuration.
// Priority (lowest → highest): defaults < env vars < JSON config file < CLI flags.
type AppConfig struct {
	// Run
	Mode        string `json:"mode" env:"MODE"`                 // roundtable | open | anonymous
	MaxDays     int    `json:"max_days" env:"MAX_DAYS"`         // day cap for the game modes
	TurnTimeout int    `json:"turn_timeout" env:"TURN_TIMEOUT"` // seconds per responder call, 0 = none
	LogDir      string `json:"log_dir" env:"LOG_DIR"`           // directory for the per-run transcript file
	DB          string `json:"db" env:"DB"`                     // transcript database connection string
	Addr        string `json:"addr" env:"ADDR"`                 // spectator WebSocket listen address, empty = off
	LogDebug    bool   `json:"log_debug" env:"LOG_DEBUG"`

	// Language model
	Provider    string `json:"provider" env:"PROVIDER"`       // gemini | openai | claude | groq | ollama | openai-compatible
	Model       string `json:"model" env:"MODEL"`             // model name, provider default when empty
	Temperature string `json:"temperature" env:"TEMPERATURE"` // float 0-1 as string
	Thinking    string `json:"thinking" env:"THINKING"`       // none | low | medium | high | auto
	OllamaURL   string `json:"ollama_url" env:"OLLAMA_URL"`
	BaseURL     string `json:"base_url" env:"LLM_BASE_URL"` // base URL for openai-compatible
	APIKey      string `json:"api_key" env:"LLM_API_KEY"`   // API key for openai-compatible

	// Provider credentials
	GoogleAPIKey    string `json:"google_api_key" env:"GOOGLE_API_KEY"`
	OpenAIAPIKey    string `json:"openai_api_key" env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `json:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	GroqAPIKey      string `json:"groq_api_key" env:"GROQ_API_KEY"`
}

func defaultConfig() AppConfig {
	return AppConfig{
		Mode:      modeAnonymous,
		MaxDays:   defaultMaxDays,
		LogDir:    "werewolf_logs",
		DB:        "file::memory:?cache=shared",
		Provider:  "gemini",
		OllamaURL: "http://localhost:11434",
	}
}

// loadConfig builds a config by layering: defaults → env vars → JSON config file.
// CLI flag overrides are applied separately by flagValues.applyTo after parsing.
func loadConfig(configPath string) AppConfig {
	cfg := defaultConfig()

	// Layer 1: env vars (unset variables keep the default)
	if err := env.Parse(&cfg); err != nil {
		log.Printf("Config: failed to parse environment: %v", err)
	}

	// Layer 2: JSON config file; only fields present in the file override env vars
	if data, err := os.ReadFile(configPath); err == nil {
		var overlay map[string]json.RawMessage
		if err := json.Unmarshal(data, &overlay); err != nil {
			log.Printf("Config: failed to parse %s: %v", configPath, err)
		} else {
			applyJSONOverlay(&cfg, overlay)
			log.Printf("Config: loaded from %s", configPath)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Config: failed to read %s: %v", configPath, err)
	}

	return cfg
}

// applyJSONOverlay only sets fields that are explicitly present in the JSON map.
func applyJSONOverlay(cfg *AppConfig, m map[string]json.RawMessage) {
	set := func(key string, dst any) {
		if v, ok := m[key]; ok {
			if err := json.Unmarshal(v, dst); err != nil {
				log.Printf("Config: ignoring %q: %v", key, err)
			}
		}
	}
	set("mode", &cfg.Mode)
	set("max_days", &cfg.MaxDays)
	set("turn_timeout", &cfg.TurnTimeout)
	set("log_dir", &cfg.LogDir)
	set("db", &cfg.DB)
	set("addr", &cfg.Addr)
	set("log_debug", &cfg.LogDebug)
	set("provider", &cfg.Provider)
	set("model", &cfg.Model)
	set("temperature", &cfg.Temperature)
	set("thinking", &cfg.Thinking)
	set("ollama_url", &cfg.OllamaURL)
	set("base_url", &cfg.BaseURL)
	set("api_key", &cfg.APIKey)
	set("google_api_key", &cfg.GoogleAPIKey)
	set("openai_api_key", &cfg.OpenAIAPIKey)
	set("anthropic_api_key", &cfg.AnthropicAPIKey)
	set("groq_api_key", &cfg.GroqAPIKey)
}

// credential returns the env var that must carry the provider's API key, and its value.
// Providers without a hosted credential (ollama, openai-compatible) return an empty name.
func (cfg AppConfig) credential() (envVar, value string) {
	switch cfg.Provider {
	case "gemini":
		return "GOOGLE_API_KEY", cfg.GoogleAPIKey
	case "openai":
		return "OPENAI_API_KEY", cfg.OpenAIAPIKey
	case "claude":
		return "ANTHROPIC_API_KEY", cfg.AnthropicAPIKey
	case "groq":
		return "GROQ_API_KEY", cfg.GroqAPIKey
	}
	return "", ""
}

// validate checks the startup preconditions. Any error here is fatal.
func (cfg AppConfig) validate() error {
	switch cfg.Mode {
	case modeRoundtable, modeOpen, modeAnonymous:
	default:
		return fmt.Errorf("unknown mode %q (valid: roundtable, open, anonymous)", cfg.Mode)
	}
	if cfg.MaxDays < 1 {
		return fmt.Errorf("max_days must be at least 1, got %d", cfg.MaxDays)
	}
	if envVar, value := cfg.credential(); envVar != "" && value == "" {
		return fmt.Errorf("%w: %s is not set", errMissingCredential, envVar)
	}
	return nil
}

// flagValues holds pointers to all registered CLI flags.
type flagValues struct {
	configPath  *string
	mode        *string
	maxDays     *int
	turnTimeout *int
	logDir      *string
	db          *string
	addr        *string
	logDebug    *bool
	provider    *string
	model       *string
	temperature *string
	thinking    *string
	ollamaURL   *string
	baseURL     *string
	apiKey      *string
}

// registerFlags registers all CLI flags on fs and returns pointers to their values.
// Parse fs after this, then applyTo to layer them over the loaded config.
// Every flag is optional; the runner works with none.
func registerFlags(fs *flag.FlagSet) flagValues {
	return flagValues{
		configPath:  fs.String("config", "config.json", "path to JSON config file"),
		mode:        fs.String("mode", "", "run mode (roundtable|open|anonymous)"),
		maxDays:     fs.Int("max-days", 0, "number of game days to play"),
		turnTimeout: fs.Int("turn-timeout", 0, "seconds to wait for each model reply (0 = no limit)"),
		logDir:      fs.String("log-dir", "", "directory for transcript log files"),
		db:          fs.String("db", "", "transcript database connection string"),
		addr:        fs.String("addr", "", "spectator WebSocket listen address (e.g. :8080)"),
		logDebug:    fs.Bool("log-debug", false, "enable debug logging"),
		provider:    fs.String("provider", "", "LLM provider (gemini|openai|claude|groq|ollama|openai-compatible)"),
		model:       fs.String("model", "", "LLM model name"),
		temperature: fs.String("temperature", "", "sampling temperature 0-1"),
		thinking:    fs.String("thinking", "", "thinking mode: none|low|medium|high|auto"),
		ollamaURL:   fs.String("ollama-url", "", "Ollama server URL"),
		baseURL:     fs.String("base-url", "", "base URL for openai-compatible provider"),
		apiKey:      fs.String("api-key", "", "API key for openai-compatible provider"),
	}
}

// applyTo overlays any CLI flags that were explicitly set onto cfg.
// Flags that were not passed on the command line are ignored (env/JSON values win).
func (fv flagValues) applyTo(fs *flag.FlagSet, cfg *AppConfig) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *fv.mode
		case "max-days":
			cfg.MaxDays = *fv.maxDays
		case "turn-timeout":
			cfg.TurnTimeout = *fv.turnTimeout
		case "log-dir":
			cfg.LogDir = *fv.logDir
		case "db":
			cfg.DB = *fv.db
		case "addr":
			cfg.Addr = *fv.addr
		case "log-debug":
			cfg.LogDebug = *fv.logDebug
		case "provider":
			cfg.Provider = *fv.provider
		case "model":
			cfg.Model = *fv.model
		case "temperature":
			cfg.Temperature = *fv.temperature
		case "thinking":
			cfg.Thinking = *fv.thinking
		case "ollama-url":
			cfg.OllamaURL = *fv.ollamaURL
		case "base-url":
			cfg.BaseURL = *fv.baseURL
		case "api-key":
			cfg.APIKey = *fv.apiKey
		}
	})
}

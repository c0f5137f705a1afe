package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"curelab/internal/errors"
)

// Config is the complete application configuration.
type Config struct {
	Server ServerConfig
	Data   DataConfig
	AI     AIConfig
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port string
}

// DataConfig holds dataset ingestion settings.
type DataConfig struct {
	// File is the .xlsx or .csv experiment sheet to load at startup.
	File string
	// OutputColumns names the measured-output columns; every other numeric
	// column is treated as a formulation input.
	OutputColumns []string
}

// AIConfig holds the language-model settings. An empty key disables the
// advice feature rather than failing startup.
type AIConfig struct {
	OpenAIKey string
	Model     string
	Timeout   time.Duration
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Data: DataConfig{
			File:          os.Getenv("DATASET_FILE"),
			OutputColumns: splitList(getEnv("OUTPUT_COLUMNS", "cure_time_min,compression_set_pct,elongation_pct")),
		},
		AI: AIConfig{
			OpenAIKey: os.Getenv("OPENAI_API_KEY"),
			Model:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout:   time.Duration(getEnvInt("OPENAI_TIMEOUT_MS", 60000)) * time.Millisecond,
		},
	}

	if cfg.Data.File == "" {
		return nil, errors.New("CONFIG_MISSING", "DATASET_FILE environment variable is required")
	}
	if len(cfg.Data.OutputColumns) == 0 {
		return nil, errors.New("CONFIG_MISSING", "OUTPUT_COLUMNS must name at least one output column")
	}
	return cfg, nil
}

// AdviceEnabled reports whether the external advice call is configured.
func (c *Config) AdviceEnabled() bool {
	return c.AI.OpenAIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

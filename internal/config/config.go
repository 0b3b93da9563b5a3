package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fluidguard/fluidguard/internal/domain"
)

// OutputFormat selects how predictions are written by non-interactive commands.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case OutputText:
		return OutputText, true
	case OutputJSON:
		return OutputJSON, true
	}
	return "", false
}

// Config holds process-wide settings for the CLI.
type Config struct {
	InputPolicy domain.InputPolicy
	LogUseCases bool
	Output      OutputFormat
	ParamsFile  string
}

// DefaultConfig returns a Config with out-of-range input rejected and
// use-case logging off.
func DefaultConfig() Config {
	return Config{
		InputPolicy: domain.PolicyReject,
		LogUseCases: false,
		Output:      OutputText,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("FLUIDGUARD_INPUT_POLICY"); v != "" {
		if p, ok := domain.ParseInputPolicy(v); ok {
			cfg.InputPolicy = p
		}
	}
	if v := os.Getenv("FLUIDGUARD_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := os.Getenv("FLUIDGUARD_OUTPUT"); v != "" {
		if f, ok := ParseOutputFormat(v); ok {
			cfg.Output = f
		}
	}
	if v := os.Getenv("FLUIDGUARD_PARAMS_FILE"); v != "" {
		cfg.ParamsFile = v
	}

	return cfg
}

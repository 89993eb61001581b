package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvConfigPath names the environment variable holding an optional
// YAML config file path.
const EnvConfigPath = "JAMSTATS_CONFIG"

// envPrefix namespaces the override variables, e.g. JAMSTATS_ADDR.
const envPrefix = "JAMSTATS_"

// Load layers the configuration sources and validates the result.
// Precedence, low to high: Default, the YAML file named by
// JAMSTATS_CONFIG, then JAMSTATS_* environment variables.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// JAMSTATS_QUEUE_SIZE becomes the flat key queue_size, matching
	// the struct tags.
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

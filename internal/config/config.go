// Package config loads qsenc CLI settings from an optional YAML file, with
// defaults and QSENC_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/reoring/qsenc"
)

type Config struct {
	Encode EncodeConfig `koanf:"encode"`
	Input  InputConfig  `koanf:"input"`
	Log    LogConfig    `koanf:"log"`
}

type EncodeConfig struct {
	Keys    string `koanf:"keys"` // "as-is" or "snake"
	Sorted  bool   `koanf:"sorted"`
	RootKey string `koanf:"root_key"`
}

type InputConfig struct {
	Format           string `koanf:"format"` // "json", "yaml" or "auto"
	RejectDuplicates bool   `koanf:"reject_duplicates"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// Load reads path (when non-empty), applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyDefaults(k)
	if err := applyEnvOverrides(k); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if _, err := cfg.Encode.Strategy(); err != nil {
		return nil, err
	}
	switch cfg.Input.Format {
	case "auto", "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown input format %q", cfg.Input.Format)
	}
	return &cfg, nil
}

// DeterminePath picks the config file: flag value, then QSENC_CONFIG, then
// ./qsenc.yaml when it exists.
func DeterminePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv("QSENC_CONFIG"); p != "" {
		return p
	}
	for _, c := range []string{"./qsenc.yaml", "./qsenc.yml"} {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Strategy resolves the configured key encoding strategy.
func (c EncodeConfig) Strategy() (qsenc.KeyEncodingStrategy, error) {
	return qsenc.ParseKeyEncodingStrategy(c.Keys)
}

// Options converts the encode section into encoder options.
func (c EncodeConfig) Options() ([]qsenc.Option, error) {
	s, err := c.Strategy()
	if err != nil {
		return nil, err
	}
	return []qsenc.Option{
		qsenc.WithKeyEncoding(s),
		qsenc.WithSortedKeys(c.Sorted),
		qsenc.WithRootKey(c.RootKey),
	}, nil
}

func applyDefaults(k *koanf.Koanf) {
	setDefault(k, "encode.keys", "as-is")
	setDefault(k, "encode.sorted", false)
	setDefault(k, "encode.root_key", "")

	setDefault(k, "input.format", "auto")
	setDefault(k, "input.reject_duplicates", false)

	setDefault(k, "log.level", "warn")
	setDefault(k, "log.development", false)
}

func applyEnvOverrides(k *koanf.Koanf) error {
	if v, ok := os.LookupEnv("QSENC_KEYS"); ok && v != "" {
		k.Set("encode.keys", v)
	}
	if v, ok := os.LookupEnv("QSENC_ROOT_KEY"); ok {
		k.Set("encode.root_key", v)
	}
	if v, ok := os.LookupEnv("QSENC_FORMAT"); ok && v != "" {
		k.Set("input.format", strings.ToLower(v))
	}
	if v, ok := os.LookupEnv("QSENC_LOG_LEVEL"); ok && v != "" {
		k.Set("log.level", v)
	}
	for env, key := range map[string]string{
		"QSENC_SORTED":            "encode.sorted",
		"QSENC_REJECT_DUPLICATES": "input.reject_duplicates",
	} {
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
		k.Set(key, b)
	}
	return nil
}

func setDefault(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}

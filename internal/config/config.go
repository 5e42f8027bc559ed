// Package config loads service settings from an optional YAML file and then
// from environment variables, which take precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"hindispell/internal/customdict"
	"hindispell/pkg/options"
)

type Config struct {
	HTTPAddr   string           `yaml:"http_addr"`
	ModelURI   string           `yaml:"model_uri"`
	Redis      RedisConfig      `yaml:"redis"`
	Correction CorrectionConfig `yaml:"correction"`
	Log        LogConfig        `yaml:"log"`
}

type RedisConfig struct {
	Addr          string `yaml:"addr"`
	Password      string `yaml:"password"`
	DB            int    `yaml:"db"`
	CustomDictKey string `yaml:"custom_dict_key"`
}

type CorrectionConfig struct {
	MaxEditDistance     int   `yaml:"max_edit_distance"`
	TopKSuggestions     int   `yaml:"top_k"`
	CustomWordFrequency int64 `yaml:"custom_word_frequency"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the settings used when neither file nor environment say
// otherwise.
func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		ModelURI: "hindi_word_model.json",
		Redis: RedisConfig{
			Addr:          "localhost:6379",
			CustomDictKey: customdict.DefaultKey,
		},
		Correction: CorrectionConfig{
			MaxEditDistance:     options.MaxEditDistance,
			TopKSuggestions:     options.DefaultOptions.TopKSuggestions,
			CustomWordFrequency: customdict.DefaultFrequency,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path (skipped when empty), applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = getenv("HTTP_ADDR", c.HTTPAddr)
	c.ModelURI = getenv("MODEL_URI", c.ModelURI)
	c.Redis.Addr = getenv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getenv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
	c.Redis.CustomDictKey = getenv("CUSTOM_DICT_KEY", c.Redis.CustomDictKey)
	c.Correction.MaxEditDistance = getEnvInt("MAX_EDIT_DISTANCE", c.Correction.MaxEditDistance)
	c.Correction.TopKSuggestions = getEnvInt("TOP_K", c.Correction.TopKSuggestions)
	c.Correction.CustomWordFrequency = int64(getEnvInt("CUSTOM_WORD_FREQUENCY", int(c.Correction.CustomWordFrequency)))
	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getenv("LOG_FORMAT", c.Log.Format)
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	var errs []error
	if c.ModelURI == "" {
		errs = append(errs, errors.New("model_uri is required"))
	}
	if d := c.Correction.MaxEditDistance; d < 0 || d > options.MaxEditDistance {
		errs = append(errs, fmt.Errorf("max_edit_distance %d outside 0..%d", d, options.MaxEditDistance))
	}
	if c.Correction.TopKSuggestions < 1 {
		errs = append(errs, fmt.Errorf("top_k must be positive, got %d", c.Correction.TopKSuggestions))
	}
	if c.Correction.CustomWordFrequency < 0 {
		errs = append(errs, fmt.Errorf("custom_word_frequency must not be negative, got %d", c.Correction.CustomWordFrequency))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log format %q is neither text nor json", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// CorrectorOptions converts the correction settings for the corrector.
func (c Config) CorrectorOptions() []options.Options {
	return []options.Options{
		options.WithMaxEditDistance(c.Correction.MaxEditDistance),
		options.WithTopKSuggestions(c.Correction.TopKSuggestions),
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

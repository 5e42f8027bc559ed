package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_ADDR", "MODEL_URI", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"CUSTOM_DICT_KEY", "MAX_EDIT_DISTANCE", "TOP_K", "CUSTOM_WORD_FREQUENCY",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 2, cfg.Correction.MaxEditDistance)
	assert.Equal(t, int64(1_000_000_000), cfg.Correction.CustomWordFrequency)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
http_addr: ":9090"
model_uri: "redis://cache:6379/1?key=hi"
redis:
  addr: "cache:6379"
  db: 1
correction:
  max_edit_distance: 1
  top_k: 3
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	clearEnv(t)
	t.Setenv("TOP_K", "7")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "redis://cache:6379/1?key=hi", cfg.ModelURI)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "custom_dict", cfg.Redis.CustomDictKey)
	assert.Equal(t, 1, cfg.Correction.MaxEditDistance)
	assert.Equal(t, 7, cfg.Correction.TopKSuggestions)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("http_addr: [unterminated"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("MAX_EDIT_DISTANCE", "3")
	_, err = Load("")
	assert.ErrorContains(t, err, "max_edit_distance")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no model", func(c *Config) { c.ModelURI = "" }, "model_uri"},
		{"negative distance", func(c *Config) { c.Correction.MaxEditDistance = -1 }, "max_edit_distance"},
		{"zero top k", func(c *Config) { c.Correction.TopKSuggestions = 0 }, "top_k"},
		{"negative custom frequency", func(c *Config) { c.Correction.CustomWordFrequency = -5 }, "custom_word_frequency"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
	log.Info("hidden")
	log.Warn("shown", "words", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, float64(3), rec["words"])

	buf.Reset()
	NewLogger(LogConfig{Level: "nonsense", Format: "text"}, &buf).Info("fallback")
	assert.Contains(t, buf.String(), "msg=fallback")
}

func TestCorrectorOptions(t *testing.T) {
	assert.Len(t, Default().CorrectorOptions(), 2)
}

package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// TestValidateConfig_Defaults tests that unset operational settings receive defaults.
func TestValidateConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, http.MethodPost, cfg.Method)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, zapcore.InfoLevel, cfg.ParsedLogLevel)
	assert.Equal(t, 30*time.Second, cfg.ParsedRequestTimeout)
	assert.Equal(t, uint64(1000000), cfg.ParsedMaxLogLength)
	assert.Equal(t, int64(DefaultRecentFailuresSize), cfg.RecentFailuresSize)
	assert.Contains(t, cfg.UserAgent, "logship/")
}

// TestValidateConfig tests validation of individual settings.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         *Config
		expectedErr error
		check       func(*testing.T, *Config)
	}{
		{
			name: "method is normalized",
			cfg:  &Config{Method: " put "},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, http.MethodPut, cfg.Method)
			},
		},
		{
			name:        "unsupported method",
			cfg:         &Config{Method: "DELETE"},
			expectedErr: ErrInvalidMethod,
		},
		{
			name:        "unknown log level",
			cfg:         &Config{LogLevel: "loud"},
			expectedErr: ErrUnknownLogLevel,
		},
		{
			name:        "negative request timeout",
			cfg:         &Config{RequestTimeout: "-5s"},
			expectedErr: ErrInvalidRequestTimeout,
		},
		{
			name:        "negative recent failures size",
			cfg:         &Config{RecentFailuresSize: -1},
			expectedErr: ErrInvalidRecentFailuresSize,
		},
		{
			name: "human-readable max log length",
			cfg:  &Config{MaxLogLength: "2KB"},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, uint64(2000), cfg.ParsedMaxLogLength)
			},
		},
		{
			name: "auth type is stored as given",
			cfg:  &Config{Auth: "secret", AuthType: "apikey"},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "apikey", cfg.AuthType)
			},
		},
		{
			name: "malformed url passes validation",
			cfg:  &Config{URL: "not a url at all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateConfig(tt.cfg)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)

				return
			}

			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t, tt.cfg)
			}
		})
	}
}

// TestConfig_BaseURL tests destination base resolution.
func TestConfig_BaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      *Config
		expected string
	}{
		{
			name:     "url set",
			cfg:      &Config{URL: "https://logs.example.com"},
			expected: "https://logs.example.com",
		},
		{
			name:     "host alias only",
			cfg:      &Config{Host: "https://old.example.com"},
			expected: "https://old.example.com",
		},
		{
			name:     "url wins over host",
			cfg:      &Config{URL: "https://new.example.com", Host: "https://old.example.com"},
			expected: "https://new.example.com",
		},
		{
			name:     "neither set falls back to placeholder",
			cfg:      &Config{},
			expected: DefaultBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.cfg.BaseURL())
		})
	}
}

// TestLoadConfig tests loading configuration from a YAML file.
//
//nolint:paralleltest // Viper keeps global state, so file-loading tests cannot run in parallel.
func TestLoadConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "logship.yaml")
	content := `
url: "https://logs.example.com"
path: "/ingest"
method: "put"
auth: "secret-token"
auth_type: "apikey"
headers:
  x-tenant: "acme"
body_addons:
  service: "checkout"
log_level: "debug"
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	cfg, err := LoadConfig(configFile)
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, "https://logs.example.com", cfg.URL)
	assert.Equal(t, "/ingest", cfg.Path)
	assert.Equal(t, http.MethodPut, cfg.Method)
	assert.Equal(t, "secret-token", cfg.Auth)
	assert.Equal(t, "apikey", cfg.AuthType)
	assert.Equal(t, map[string]string{"x-tenant": "acme"}, cfg.Headers)
	assert.Equal(t, map[string]any{"service": "checkout"}, cfg.BodyAddons)
	assert.Equal(t, zapcore.DebugLevel, cfg.ParsedLogLevel)
}

// TestLoadConfig_MissingFile tests that a missing file yields a generated default config.
//
//nolint:paralleltest // Viper keeps global state, so file-loading tests cannot run in parallel.
func TestLoadConfig_MissingFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := LoadConfig(configFile)
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	// The default config file must have been written in place.
	written, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(written, &parsed))
	assert.Equal(t, DefaultBaseURL, parsed["url"])
	assert.Equal(t, http.MethodPost, parsed["method"])
}

// TestWriteDefaultConfig tests default config generation.
func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	configFile := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, WriteDefaultConfig(configFile))

	content, err := os.ReadFile(configFile)
	require.NoError(t, err)

	// Comments and field order must survive emission.
	assert.Contains(t, string(content), "# base of the destination URL")
	assert.Less(t,
		indexOf(string(content), "url:"),
		indexOf(string(content), "method:"))
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}

	return -1
}

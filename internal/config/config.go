package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/logship/internal/constants"
	"github.com/oshokin/logship/internal/logger"
	"github.com/oshokin/logship/internal/version"
)

// Config holds all configuration settings.
type Config struct {
	// URL is the base of the destination URL for shipped records.
	URL string `mapstructure:"url"`
	// Host is a deprecated alias for URL, accepted for backward compatibility.
	// When both are set, URL wins.
	Host string `mapstructure:"host"`
	// Path is appended to the base URL with slash normalization.
	Path string `mapstructure:"path"`
	// Method is the HTTP verb used for delivery: POST or PUT.
	Method string `mapstructure:"method"`
	// Auth is the secret inserted into the Authorization header.
	Auth string `mapstructure:"auth"`
	// AuthType selects the Authorization header value prefix:
	// bearer, apikey, basic, custom, or none.
	// It is stored as given; an empty value defaults to bearer only when Auth is set.
	AuthType string `mapstructure:"auth_type"`
	// Headers are static headers merged into every request.
	Headers map[string]string `mapstructure:"headers"`
	// BodyAddons are static fields merged into every request body,
	// overriding same-named record fields.
	BodyAddons map[string]any `mapstructure:"body_addons"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// RequestTimeout bounds each delivery attempt (e.g. "30s").
	RequestTimeout string `mapstructure:"request_timeout"`
	// MaxLogLength is the maximum size of dumped request/response data
	// in debug logs (e.g. "1MB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// UserAgent is sent on outgoing deliveries when no User-Agent header is set.
	UserAgent string `mapstructure:"user_agent"`
	// RecentFailuresSize bounds the recorder of recent failed deliveries.
	RecentFailuresSize int64 `mapstructure:"recent_failures_size"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedRequestTimeout is the parsed delivery timeout.
	ParsedRequestTimeout time.Duration
	// ParsedMaxLogLength is the parsed debug dump limit in bytes.
	ParsedMaxLogLength uint64
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".logship.yaml"

	// DefaultBaseURL is the placeholder destination used when neither url nor host is configured.
	DefaultBaseURL = "http://localhost"

	// DefaultLogLevel is the logging verbosity used when log_level is unset.
	DefaultLogLevel = "info"

	// DefaultRequestTimeout bounds a delivery attempt when request_timeout is unset.
	DefaultRequestTimeout = "30s"

	// DefaultMaxLogLength is the default maximum size (in bytes) for dumped request/response data.
	DefaultMaxLogLength = 1_000_000 // 1 MB

	// defaultMaxLogLengthSetting is the textual form of DefaultMaxLogLength used in config files.
	defaultMaxLogLengthSetting = "1MB"

	// DefaultRecentFailuresSize bounds the recent-failures recorder when unset.
	DefaultRecentFailuresSize = 64
)

// Static error definitions for better error handling.
var (
	// ErrInvalidMethod indicates that the configured HTTP method is not supported.
	ErrInvalidMethod = errors.New("method must be POST or PUT")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidRequestTimeout indicates that the request timeout is invalid.
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	// ErrInvalidRecentFailuresSize indicates that the recent failures size is invalid.
	ErrInvalidRecentFailuresSize = errors.New("recent_failures_size must be a positive integer")
)

// LoadConfig loads configuration settings from a YAML file.
// A missing file is not an error: a commented default configuration
// is written in its place and the defaults are used for this run.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)

	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if writeErr := WriteDefaultConfig(configFilename); writeErr != nil {
				return nil, fmt.Errorf("failed to write default config: %w", writeErr)
			}

			return &Config{}, nil
		}

		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity,
// applies defaults for unset operational settings, and fills derived fields.
// Destination URL strings are deliberately not validated:
// resolution is string-based, and malformed URLs surface at delivery time.
func ValidateConfig(cfg *Config) error {
	cfg.Method = strings.ToUpper(strings.TrimSpace(cfg.Method))
	if cfg.Method == "" {
		cfg.Method = http.MethodPost
	}

	if cfg.Method != http.MethodPost && cfg.Method != http.MethodPut {
		return fmt.Errorf("%w, got '%s'", ErrInvalidMethod, cfg.Method)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if cfg.RequestTimeout == "" {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	parsedRequestTimeout, err := time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse request timeout: %w", err)
	}

	if parsedRequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}

	cfg.ParsedRequestTimeout = parsedRequestTimeout

	if cfg.MaxLogLength == "" {
		cfg.MaxLogLength = defaultMaxLogLengthSetting
	}

	cfg.ParsedMaxLogLength, err = humanize.ParseBytes(cfg.MaxLogLength)
	if err != nil {
		return fmt.Errorf("failed to parse max log length: %w", err)
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = "logship/" + version.Short()
	}

	if cfg.RecentFailuresSize == 0 {
		cfg.RecentFailuresSize = DefaultRecentFailuresSize
	}

	if cfg.RecentFailuresSize < 0 {
		return ErrInvalidRecentFailuresSize
	}

	return nil
}

// BaseURL resolves the destination base: url wins over the deprecated host alias,
// and the local placeholder is used when both are unset.
func (cfg *Config) BaseURL() string {
	if cfg.URL != "" {
		return cfg.URL
	}

	if cfg.Host != "" {
		return cfg.Host
	}

	return DefaultBaseURL
}

// WriteDefaultConfig writes a commented default configuration file.
// Field order is preserved by emitting an explicit yaml.Node tree.
func WriteDefaultConfig(configFilename string) error {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	node := defaultConfigNode()

	content, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err = os.WriteFile(configFilename, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// defaultConfigNode builds the YAML document for WriteDefaultConfig.
func defaultConfigNode() *yaml.Node {
	entries := []struct {
		key     string
		value   string
		comment string
	}{
		{"url", DefaultBaseURL, "base of the destination URL"},
		{"path", "", "appended to the base URL, slash-normalized"},
		{"method", http.MethodPost, "POST or PUT"},
		{"auth", "", "secret inserted into the Authorization header"},
		{"auth_type", "", "bearer, apikey, basic, custom or none (bearer when unset)"},
		{"log_level", DefaultLogLevel, "debug, info, warn or error"},
		{"request_timeout", DefaultRequestTimeout, "per-delivery timeout"},
		{"max_log_length", defaultMaxLogLengthSetting, "debug dump size limit"},
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}

	for _, entry := range entries {
		keyNode := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Value:       entry.key,
			HeadComment: entry.comment,
		}
		valueNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: entry.value,
		}

		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}

	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{mapping},
	}
}

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

// TestNew tests the New function.
func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level zapcore.LevelEnabler
	}{
		{
			name:  "with debug level",
			level: zapcore.DebugLevel,
		},
		{
			name:  "with error level",
			level: zapcore.ErrorLevel,
		},
		{
			name:  "with nil level falls back to the shared level",
			level: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.NotNil(t, New(tt.level))
		})
	}
}

// TestParseLogLevel tests the ParseLogLevel function.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected zapcore.Level
		valid    bool
	}{
		{
			name:     "debug level",
			input:    "debug",
			expected: zapcore.DebugLevel,
			valid:    true,
		},
		{
			name:     "info level",
			input:    "info",
			expected: zapcore.InfoLevel,
			valid:    true,
		},
		{
			name:     "warn level",
			input:    "warn",
			expected: zapcore.WarnLevel,
			valid:    true,
		},
		{
			name:     "error level",
			input:    "error",
			expected: zapcore.ErrorLevel,
			valid:    true,
		},
		{
			name:     "uppercase input",
			input:    "DEBUG",
			expected: zapcore.DebugLevel,
			valid:    true,
		},
		{
			name:     "surrounding spaces",
			input:    " warn ",
			expected: zapcore.WarnLevel,
			valid:    true,
		},
		{
			name:     "unrecognized input",
			input:    "loud",
			expected: zapcore.InfoLevel,
			valid:    false,
		},
		{
			name:     "empty input",
			input:    "",
			expected: zapcore.InfoLevel,
			valid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			level, valid := ParseLogLevel(tt.input)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

// TestSetLogger tests the SetLogger function.
func TestSetLogger(t *testing.T) {
	// Not parallel: mutates global logger state.
	originalLogger := Logger()
	defer SetLogger(originalLogger)

	newLogger := New(zapcore.DebugLevel)
	SetLogger(newLogger)

	assert.Equal(t, newLogger, Logger())
}

// TestSetLevel tests the SetLevel and IsDebugLevel functions.
func TestSetLevel(t *testing.T) {
	// Not parallel: mutates global level state.
	originalLevel := Level()
	defer SetLevel(originalLevel)

	SetLevel(zapcore.DebugLevel)
	assert.Equal(t, zapcore.DebugLevel, Level())
	assert.True(t, IsDebugLevel())

	SetLevel(zapcore.ErrorLevel)
	assert.Equal(t, zapcore.ErrorLevel, Level())
	assert.False(t, IsDebugLevel())
}

// TestContextRoundTrip tests the ToContext and FromContext functions.
func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	contextLogger := New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), contextLogger)

	assert.Equal(t, contextLogger, FromContext(ctx))
	assert.Equal(t, Logger(), FromContext(context.Background()))
}

// TestContextLoggingFunctions tests that the context-based helpers do not panic.
func TestContextLoggingFunctions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	Debug(ctx, "debug message")
	Debugf(ctx, "debug message: %s", "formatted")
	DebugKV(ctx, "debug message", "key", "value")

	Info(ctx, "info message")
	Infof(ctx, "info message: %s", "formatted")
	InfoKV(ctx, "info message", "key", "value")

	Warn(ctx, "warn message")
	Warnf(ctx, "warn message: %s", "formatted")
	WarnKV(ctx, "warn message", "key", "value")

	Error(ctx, "error message")
	Errorf(ctx, "error message: %s", "formatted")
	ErrorKV(ctx, "error message", "key", "value")
}

package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		logLevel string
		want     zerolog.Level
	}{
		{name: "development is always debug", env: "development", logLevel: "error", want: zerolog.DebugLevel},
		{name: "production defaults to info", env: "production", logLevel: "", want: zerolog.InfoLevel},
		{name: "LOG_LEVEL warn", env: "production", logLevel: "warn", want: zerolog.WarnLevel},
		{name: "LOG_LEVEL error", env: "production", logLevel: "ERROR", want: zerolog.ErrorLevel},
		{name: "unknown LOG_LEVEL falls back to info", env: "production", logLevel: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			assert.Equal(t, tt.want, levelFromEnv(tt.env))
		})
	}
}

func TestLoggerFromContext_WithoutSpan(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.NotNil(t, logger)
}

package logger

import (
	"institute_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want zap.AtomicLevel
	}{
		{"explicit level wins", config.Config{Log: config.LogConfig{Level: "warn"}, Server: config.ServerConfig{Mode: "debug"}}, zap.NewAtomicLevelAt(zap.WarnLevel)},
		{"debug mode", config.Config{Server: config.ServerConfig{Mode: "debug"}}, zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"release mode", config.Config{Server: config.ServerConfig{Mode: "release"}}, zap.NewAtomicLevelAt(zap.InfoLevel)},
		{"garbage level falls back to mode", config.Config{Log: config.LogConfig{Level: "loud"}, Server: config.ServerConfig{Mode: "release"}}, zap.NewAtomicLevelAt(zap.InfoLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want.Level(), ParseLevel(&tt.cfg))
		})
	}
}

func TestSetLevel(t *testing.T) {
	SetLevel(&config.Config{Log: config.LogConfig{Level: "error"}})
	assert.Equal(t, zap.ErrorLevel, level.Level())

	SetLevel(&config.Config{Log: config.LogConfig{Level: "debug"}})
	assert.Equal(t, zap.DebugLevel, level.Level())
}

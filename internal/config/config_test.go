package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "finance.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FINANCE_DB_PATH", "/tmp/test.db")
	t.Setenv("FINANCE_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{DBPath: "finance.db", LogLevel: "info"}, false},
		{"empty db path", Config{DBPath: "  ", LogLevel: "info"}, true},
		{"bad log level", Config{DBPath: "finance.db", LogLevel: "loud"}, true},
		{"mixed case level", Config{DBPath: "finance.db", LogLevel: "WARN"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := Config{DBPath: "x", LogLevel: "warn"}
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/docs", cfg.Docs.Path)
	assert.Equal(t, "en", cfg.I18n.DefaultLanguage)
}

func TestLoad(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		def := Default()
		assert.Equal(t, def.Server, cfg.Server)
		assert.Equal(t, def.Docs, cfg.Docs)
		assert.Equal(t, def.Log, cfg.Log)
		assert.Equal(t, def.I18n, cfg.I18n)
		assert.Equal(t, def.OpenAPI.Title, cfg.OpenAPI.Title)
		assert.Empty(t, cfg.OpenAPI.Servers)
		assert.Empty(t, cfg.Auth.Token)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := writeFile(t, "baasdoc.yaml", `
server:
  addr: ":9000"
  max_connections: 128
  read_timeout: 5s
openapi:
  title: Example
  version: 2.0.0
  servers:
    - https://api.example.com
docs:
  path: /reference
  ui: redoc
log:
  level: debug
  format: json
i18n:
  default_language: de
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, 128, cfg.Server.MaxConnections)
		assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, "Example", cfg.OpenAPI.Title)
		assert.Equal(t, []string{"https://api.example.com"}, cfg.OpenAPI.Servers)
		assert.Equal(t, "/reference", cfg.Docs.Path)
		assert.Equal(t, "redoc", cfg.Docs.UI)
		assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
		assert.Equal(t, language.German, cfg.I18n.Language())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("BAASDOC_SERVER_ADDR", ":7000")
		t.Setenv("BAASDOC_LOG_LEVEL", "warn")
		t.Setenv("BAASDOC_AUTH_TOKEN", "secret")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.Server.Addr)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "secret", cfg.Auth.Token)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeFile(t, "baasdoc.yaml", "docs:\n  ui: scalar\nlog:\n  format: xml\n")

		_, err := Load(path)
		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 2)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeFile(t, "baasdoc.yaml", "server: [\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"negative connections", func(c *Config) { c.Server.MaxConnections = -1 }, "server.max_connections"},
		{"negative timeout", func(c *Config) { c.Server.ReadTimeout = -time.Second }, "server"},
		{"body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "server.max_body_bytes"},
		{"empty title", func(c *Config) { c.OpenAPI.Title = "" }, "openapi.title"},
		{"empty version", func(c *Config) { c.OpenAPI.Version = "" }, "openapi.version"},
		{"relative docs path", func(c *Config) { c.Docs.Path = "docs" }, "docs.path"},
		{"unknown ui", func(c *Config) { c.Docs.UI = "scalar" }, "docs.ui"},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad language", func(c *Config) { c.I18n.DefaultLanguage = "not a tag" }, "i18n.default_language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("disabled docs", func(t *testing.T) {
		cfg := Default()
		cfg.Docs.Path = "-"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("several errors", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Addr = ""
		cfg.OpenAPI.Title = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid fields")
	})
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, LogConfig{Level: tt.level}.SlogLevel())
		})
	}
}

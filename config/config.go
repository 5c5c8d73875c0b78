// Package config loads the baasdoc configuration from a YAML file and
// BAASDOC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/vitalvas/baasdoc/openapi"
)

// EnvPrefix is the prefix of environment variables overriding config keys:
// BAASDOC_SERVER_ADDR overrides server.addr.
const EnvPrefix = "BAASDOC"

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	OpenAPI OpenAPIConfig `mapstructure:"openapi" yaml:"openapi"`
	Docs    DocsConfig    `mapstructure:"docs" yaml:"docs"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	I18n    I18nConfig    `mapstructure:"i18n" yaml:"i18n"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `mapstructure:"addr" yaml:"addr"`

	// MaxConnections caps concurrent connections; 0 means unlimited.
	MaxConnections int `mapstructure:"max_connections" yaml:"max_connections"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// OpenAPIConfig carries the document metadata.
type OpenAPIConfig struct {
	Title       string   `mapstructure:"title" yaml:"title"`
	Version     string   `mapstructure:"version" yaml:"version"`
	Description string   `mapstructure:"description" yaml:"description"`
	Servers     []string `mapstructure:"servers" yaml:"servers"`
}

// DocsConfig configures the document endpoints.
type DocsConfig struct {
	// Path of the interactive docs page; "-" disables it.
	Path string `mapstructure:"path" yaml:"path"`

	// UI is one of swagger, rapidoc or redoc.
	UI string `mapstructure:"ui" yaml:"ui"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `mapstructure:"level" yaml:"level"`

	// Format is text or json.
	Format string `mapstructure:"format" yaml:"format"`
}

// I18nConfig configures response code translations.
type I18nConfig struct {
	// DefaultLanguage is the BCP 47 tag used when a request matches no
	// supported language.
	DefaultLanguage string `mapstructure:"default_language" yaml:"default_language"`
}

// AuthConfig configures bearer authentication of the protected modules.
type AuthConfig struct {
	// Token is the accepted bearer token. Empty leaves every module public.
	Token string `mapstructure:"token" yaml:"token"`
}

var (
	supportedLevels  = []string{"debug", "info", "warn", "error"}
	supportedFormats = []string{"text", "json"}
)

// ValidationError reports one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors reports every invalid field.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString("config: invalid fields:")
	for _, err := range e {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
	}
	return sb.String()
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		OpenAPI: OpenAPIConfig{
			Title:   "BaaS API",
			Version: "1.0.0",
		},
		Docs: DocsConfig{
			Path: "/docs",
			UI:   "swagger",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		I18n: I18nConfig{
			DefaultLanguage: "en",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.max_connections", d.Server.MaxConnections)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)
	v.SetDefault("openapi.title", d.OpenAPI.Title)
	v.SetDefault("openapi.version", d.OpenAPI.Version)
	v.SetDefault("openapi.description", d.OpenAPI.Description)
	v.SetDefault("openapi.servers", d.OpenAPI.Servers)
	v.SetDefault("docs.path", d.Docs.Path)
	v.SetDefault("docs.ui", d.Docs.UI)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("i18n.default_language", d.I18n.DefaultLanguage)
	v.SetDefault("auth.token", d.Auth.Token)
}

// Load reads the configuration. An empty path skips the file and uses
// defaults and environment variables only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if c.Server.Addr == "" {
		add("server.addr", "address is required")
	}
	if c.Server.MaxConnections < 0 {
		add("server.max_connections", "must be non-negative")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		add("server", "timeouts must be non-negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		add("server.max_body_bytes", "must be greater than zero")
	}

	if c.OpenAPI.Title == "" {
		add("openapi.title", "title is required")
	}
	if c.OpenAPI.Version == "" {
		add("openapi.version", "version is required")
	}

	if c.Docs.Path != "-" && !strings.HasPrefix(c.Docs.Path, "/") {
		add("docs.path", fmt.Sprintf("%q must start with / or be -", c.Docs.Path))
	}
	if _, err := openapi.ParseDocsUI(c.Docs.UI); err != nil {
		add("docs.ui", fmt.Sprintf("unsupported ui %q, must be one of: swagger, rapidoc, redoc", c.Docs.UI))
	}

	if !slices.Contains(supportedLevels, strings.ToLower(c.Log.Level)) {
		add("log.level", fmt.Sprintf("unsupported level %q, must be one of: %s", c.Log.Level, strings.Join(supportedLevels, ", ")))
	}
	if !slices.Contains(supportedFormats, strings.ToLower(c.Log.Format)) {
		add("log.format", fmt.Sprintf("unsupported format %q, must be one of: %s", c.Log.Format, strings.Join(supportedFormats, ", ")))
	}

	if _, err := language.Parse(c.I18n.DefaultLanguage); err != nil {
		add("i18n.default_language", fmt.Sprintf("invalid language tag %q", c.I18n.DefaultLanguage))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Language returns the default language tag.
func (c I18nConfig) Language() language.Tag {
	tag, err := language.Parse(c.DefaultLanguage)
	if err != nil {
		return language.English
	}
	return tag
}

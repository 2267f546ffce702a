package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// decoded into Config.
	ErrParsingConfig = errors.New("config: failed to parse environment")

	// ErrInvalidConfig is returned when a decoded value fails its constraints.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the central typed configuration struct.
type Config struct {
	App        AppConfig
	Log        LogConfig
	Validation ValidationConfig
}

type AppConfig struct {
	Name  string `env:"APP_NAME" envDefault:"formrules" validate:"required"`
	Env   string `env:"APP_ENV" envDefault:"local" validate:"oneof=local production testing"`
	Debug bool   `env:"APP_DEBUG" envDefault:"false"`
	Host  string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port  int    `env:"APP_PORT" envDefault:"8000" validate:"min=1,max=65535"`

	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

// Addr returns host:port for the HTTP listener.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	Format string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type ValidationConfig struct {
	// MaxMemory is the multipart memory limit in bytes.
	MaxMemory int64  `env:"VALIDATION_MAX_MEMORY" envDefault:"33554432" validate:"gt=0"`
	Strict    bool   `env:"VALIDATION_STRICT" envDefault:"false"`
	Timezone  string `env:"VALIDATION_TIMEZONE" envDefault:"UTC" validate:"timezone"`
	Language  string `env:"VALIDATION_LANGUAGE" envDefault:"en" validate:"bcp47_language_tag"`

	MessagesDir string `env:"VALIDATION_MESSAGES_DIR" validate:"omitempty,dir"`
	RulesFile   string `env:"VALIDATION_RULES_FILE" validate:"omitempty,file"`
}

// Location resolves Timezone.
func (c ValidationConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Tag parses Language.
func (c ValidationConfig) Tag() (language.Tag, error) {
	return language.Parse(c.Language)
}

// Load reads .env files (if present), decodes the environment into a
// Config and checks its constraints.
// Call once at bootstrap: cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool { return c.App.Env == "production" }

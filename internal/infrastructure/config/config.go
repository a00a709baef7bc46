package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SENTIMENT_SERVER_PORT.
const EnvPrefix = "SENTIMENT"

// Model backends
const (
	BackendHugot  = "hugot"
	BackendRemote = "remote"
)

// DefaultModelName is the sentiment model downloaded when no local model path is configured
const DefaultModelName = "distilbert/distilbert-base-uncased-finetuned-sst-2-english"

// Config holds the complete application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Model  ModelConfig  `mapstructure:"model"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ModelConfig selects and configures the sentiment model backend
type ModelConfig struct {
	Backend        string        `mapstructure:"backend"`
	Name           string        `mapstructure:"name"`
	Path           string        `mapstructure:"path"`
	CacheDir       string        `mapstructure:"cache_dir"`
	OnnxFile       string        `mapstructure:"onnx_file"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	RemoteURL      string        `mapstructure:"remote_url"`
	RemoteTimeout  time.Duration `mapstructure:"remote_timeout"`
}

// Address returns the host:port the server listens on
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load reads configuration from defaults, an optional config.yaml and
// SENTIMENT_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "release")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("model.backend", BackendHugot)
	v.SetDefault("model.name", DefaultModelName)
	v.SetDefault("model.path", "")
	v.SetDefault("model.cache_dir", "./models")
	v.SetDefault("model.onnx_file", "")
	v.SetDefault("model.max_concurrency", 1)
	v.SetDefault("model.remote_url", "http://localhost:8000")
	v.SetDefault("model.remote_timeout", "0s")
}

// Validate checks the settings the process cannot start without.
// The model section is checked by the model loader, so a bad model setting
// leaves the service running with the model unavailable.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server),
		validation.Field(&c.Log),
	)
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Host, validation.Required, is.Host),
		validation.Field(&s.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&s.Mode, validation.Required, validation.In("debug", "release", "test")),
	)
}

func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.Required, validation.In("json", "console")),
	)
}

func (m ModelConfig) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Backend, validation.Required),
		validation.Field(&m.Name,
			validation.When(m.Backend == BackendHugot && m.Path == "", validation.Required),
		),
		validation.Field(&m.CacheDir,
			validation.When(m.Backend == BackendHugot && m.Path == "", validation.Required),
		),
		validation.Field(&m.MaxConcurrency, validation.Required, validation.Min(1)),
		validation.Field(&m.RemoteURL,
			validation.When(m.Backend == BackendRemote, validation.Required, is.URL),
		),
		validation.Field(&m.RemoteTimeout, validation.Min(time.Duration(0))),
	)
}

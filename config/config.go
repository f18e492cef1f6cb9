// Package config loads chunkpipe configuration.
// Sources, lowest to highest precedence: built-in defaults, an optional
// config file, CHUNKPIPE_* environment variables, bound CLI flags.
// All fields have safe defaults so the binary runs without any setup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. CHUNKPIPE_SERVER_PORT.
const EnvPrefix = "CHUNKPIPE"

// Config holds runtime configuration.
type Config struct {
	Server     Server     `mapstructure:"server"`
	Log        Log        `mapstructure:"log"`
	Output     Output     `mapstructure:"output"`
	Fetch      Fetch      `mapstructure:"fetch"`
	Embeddings Embeddings `mapstructure:"embeddings"`
}

// Server configures the web UI.
type Server struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"             validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"   validate:"gt=0"`
}

// Log configures the process logger.
type Log struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error disabled"`
	JSON  bool   `mapstructure:"json"`
}

// Output configures where the CLI writes files.
type Output struct {
	Dir string `mapstructure:"dir"`
}

// Fetch configures the --url input source.
type Fetch struct {
	Timeout   time.Duration `mapstructure:"timeout"    validate:"gt=0"`
	UserAgent string        `mapstructure:"user_agent" validate:"required"`
}

// Embeddings configures the embeddings renderer.
type Embeddings struct {
	URL     string        `mapstructure:"url"     validate:"required,url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// Addr returns host:port for net/http.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", int64(10<<20))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("output.dir", "")

	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.user_agent", "chunkpipe/1.0 (https://github.com/gaurav-prasanna/chunkpipe)")

	v.SetDefault("embeddings.url", "http://localhost:11434/api/embeddings")
	v.SetDefault("embeddings.model", "")
	v.SetDefault("embeddings.timeout", 60*time.Second)
}

// Load reads configuration into a validated Config. path may be empty;
// a named file that does not exist is an error, an unnamed one is not.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("chunkpipe")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is ignored.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ferdiebergado/snaptools/internal/pkg/env"
	timex "github.com/ferdiebergado/snaptools/internal/pkg/time"
)

type App struct {
	Env      string `json:"env,omitempty" env:"APP_ENV"`
	LogLevel string `json:"log_level,omitempty" env:"LOG_LEVEL"`
}

type Server struct {
	Port            int            `json:"port,omitempty" env:"PORT"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty"`
}

type CORS struct {
	AllowedOrigin string `json:"allowed_origin,omitempty" env:"CORS_ALLOWED_ORIGIN"`
}

type Transform struct {
	Timeout        timex.Duration `json:"timeout,omitempty"`
	KeygenTimeout  timex.Duration `json:"keygen_timeout,omitempty"`
	ClipboardWait  timex.Duration `json:"clipboard_timeout,omitempty"`
	SaltLength     uint32         `json:"salt_length,omitempty"`
	DefaultPadding string         `json:"default_padding,omitempty" env:"RSA_PADDING"`
}

type Argon2 struct {
	Memory     uint32 `json:"memory,omitempty"`
	Threads    uint8  `json:"threads,omitempty"`
	SaltLength uint32 `json:"salt_length,omitempty"`
	KeyLength  uint32 `json:"key_length,omitempty"`
}

type Config struct {
	App       *App       `json:"app,omitempty"`
	Server    *Server    `json:"server,omitempty"`
	CORS      *CORS      `json:"cors,omitempty"`
	Transform *Transform `json:"transform,omitempty"`
	Argon2    *Argon2    `json:"argon2,omitempty"`
}

func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("app", c.App),
		slog.Any("server", c.Server),
		slog.Any("cors", c.CORS),
		slog.Any("transform", c.Transform),
		slog.Any("argon2", c.Argon2),
	)
}

// Load reads the JSON config file, then applies environment overrides
// declared with env tags.
func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...")
	cfg, err := parseCfgFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := env.OverrideStruct(cfg); err != nil {
		return nil, fmt.Errorf("override config with env: %w", err)
	}

	cfg.applyDefaults()

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", cfg))
	return cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func parseCfgFile(cfgFile string) (*Config, error) {
	cfgFile = filepath.Clean(cfgFile)
	configFile, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := json.Unmarshal(configFile, &cfg); err != nil {
		return nil, fmt.Errorf("decode json config %s: %w", cfgFile, err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Env == "" {
		c.App.Env = "development"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}

	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8888
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}
	setDuration(&c.Server.ReadTimeout, "10s")
	setDuration(&c.Server.WriteTimeout, "30s")
	setDuration(&c.Server.IdleTimeout, "60s")
	setDuration(&c.Server.ShutdownTimeout, "10s")

	if c.CORS == nil {
		c.CORS = &CORS{}
	}
	if c.CORS.AllowedOrigin == "" {
		c.CORS.AllowedOrigin = "*"
	}

	if c.Transform == nil {
		c.Transform = &Transform{}
	}
	setDuration(&c.Transform.Timeout, "10s")
	setDuration(&c.Transform.KeygenTimeout, "30s")
	setDuration(&c.Transform.ClipboardWait, "2s")
	if c.Transform.SaltLength == 0 {
		c.Transform.SaltLength = 16
	}
	if c.Transform.DefaultPadding == "" {
		c.Transform.DefaultPadding = "oaep"
	}

	if c.Argon2 == nil {
		c.Argon2 = &Argon2{}
	}
	if c.Argon2.Memory == 0 {
		c.Argon2.Memory = 64 * 1024
	}
	if c.Argon2.Threads == 0 {
		c.Argon2.Threads = 2
	}
	if c.Argon2.SaltLength == 0 {
		c.Argon2.SaltLength = 16
	}
	if c.Argon2.KeyLength == 0 {
		c.Argon2.KeyLength = 32
	}
}

func setDuration(d *timex.Duration, fallback string) {
	if d.Duration == 0 {
		_ = d.UnmarshalText([]byte(fallback))
	}
}

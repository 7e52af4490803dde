// Package config loads rentivo settings from defaults, an optional YAML
// file, a .env file and RENTIVO_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/evcraddock/rentivo/internal/validation"
)

const (
	// EnvPrefix marks environment variables that override settings.
	EnvPrefix = "RENTIVO_"
	// DefaultFile is read from the working directory when no path is given.
	DefaultFile = "rentivo.yaml"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Log configures log/slog.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// HTTP configures the API server.
type HTTP struct {
	Port           int      `yaml:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Storage picks the local-storage backend.
type Storage struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite redis memory"`
	// Path is the sqlite file. Empty means ~/.rentivo/rentivo.db.
	Path string `yaml:"path"`
}

// Redis configures the redis storage backend.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0"`
	Prefix   string `yaml:"prefix"`
}

// GenAI configures the Gemini client. An empty APIKey disables AI calls
// and every helper answers with its fallback.
type GenAI struct {
	APIKey     string        `yaml:"apiKey"`
	BaseURL    string        `yaml:"baseURL" validate:"omitempty,url"`
	TextModel  string        `yaml:"textModel" validate:"required"`
	ImageModel string        `yaml:"imageModel" validate:"required"`
	Timeout    time.Duration `yaml:"timeout" validate:"gt=0"`
}

// RateLimit throttles the AI endpoints of the API server.
type RateLimit struct {
	RPS   float64 `yaml:"rps" validate:"gt=0"`
	Burst int     `yaml:"burst" validate:"min=1"`
}

// Config is the full application configuration.
type Config struct {
	Log       Log       `yaml:"log"`
	HTTP      HTTP      `yaml:"http"`
	Storage   Storage   `yaml:"storage"`
	Redis     Redis     `yaml:"redis"`
	GenAI     GenAI     `yaml:"genai"`
	RateLimit RateLimit `yaml:"ratelimit"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:       Log{Level: "info", Format: "text"},
		HTTP:      HTTP{Port: 8080, AllowedOrigins: []string{"*"}},
		Storage:   Storage{Driver: DriverSQLite},
		Redis:     Redis{Addr: "localhost:6379", Prefix: "rentivo:"},
		GenAI:     GenAI{TextModel: "gemini-3-flash-preview", ImageModel: "gemini-2.5-flash-image", Timeout: 60 * time.Second},
		RateLimit: RateLimit{RPS: 1, Burst: 5},
	}
}

// defaultKeys flattens Default into koanf keys, which also gives the
// canonical spelling for environment overrides.
func defaultKeys() map[string]any {
	d := Default()
	return map[string]any{
		"log.level":           d.Log.Level,
		"log.format":          d.Log.Format,
		"http.port":           d.HTTP.Port,
		"http.allowedOrigins": d.HTTP.AllowedOrigins,
		"storage.driver":      d.Storage.Driver,
		"storage.path":        d.Storage.Path,
		"redis.addr":          d.Redis.Addr,
		"redis.password":      d.Redis.Password,
		"redis.db":            d.Redis.DB,
		"redis.prefix":        d.Redis.Prefix,
		"genai.apiKey":        d.GenAI.APIKey,
		"genai.baseURL":       d.GenAI.BaseURL,
		"genai.textModel":     d.GenAI.TextModel,
		"genai.imageModel":    d.GenAI.ImageModel,
		"genai.timeout":       d.GenAI.Timeout.String(),
		"ratelimit.rps":       d.RateLimit.RPS,
		"ratelimit.burst":     d.RateLimit.Burst,
	}
}

// Load builds the configuration. An explicit path must exist; with an empty
// path ./rentivo.yaml is used when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")
	defaults := defaultKeys()
	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	canonical := make(map[string]string, len(defaults))
	for key := range defaults {
		canonical[normalize(key)] = key
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, v string) (string, any) {
			return envKey(key, v, canonical)
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps RENTIVO_GENAI_API_KEY style names onto a known key such as
// genai.apiKey. Unknown names are dropped.
func envKey(name, value string, canonical map[string]string) (string, any) {
	name = strings.TrimPrefix(name, EnvPrefix)
	section, field, ok := strings.Cut(strings.ToLower(name), "_")
	if !ok {
		return "", nil
	}
	key, ok := canonical[normalize(section+"."+field)]
	if !ok {
		return "", nil
	}
	if key == "http.allowedOrigins" {
		return key, splitList(value)
	}
	return key, value
}

// normalize lowercases a key and drops underscores so env names and
// camelCase keys compare equal.
func normalize(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "")
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks value ranges and redis settings.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Storage.Driver == DriverRedis && c.Redis.Addr == "" {
		return fmt.Errorf("config: %w", validation.NewError("redis.addr", "required"))
	}
	return nil
}

// Write saves c as YAML at path, creating parent directories.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

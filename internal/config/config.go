package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-renderer/internal/preview"

	"github.com/spf13/viper"
)

// Config holds all renderer settings.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Render   RenderConfig   `mapstructure:"render"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Preview  PreviewConfig  `mapstructure:"preview"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	BodyLimit      int      `mapstructure:"body_limit"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// RenderConfig controls the latexmk compiler.
type RenderConfig struct {
	Binary          string        `mapstructure:"binary"`
	Timeout         time.Duration `mapstructure:"timeout"`
	WorkDir         string        `mapstructure:"workdir"`
	FallbackPreview bool          `mapstructure:"fallback_preview"`
}

// DatabaseConfig points at the jobs database; an empty URL disables persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// CacheConfig points at Redis; an empty address disables caching.
type CacheConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

type PreviewConfig struct {
	Latency  time.Duration  `mapstructure:"latency"`
	Defaults preview.Tokens `mapstructure:"defaults"`
}

func setDefaults(v *viper.Viper) {
	defaults := preview.DefaultTokens()
	v.SetDefault("server.port", 4100)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.body_limit", 2*1024*1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("render.binary", "latexmk")
	v.SetDefault("render.timeout", 20*time.Second)
	v.SetDefault("render.workdir", "")
	v.SetDefault("render.fallback_preview", true)
	v.SetDefault("database.url", "")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("preview.latency", 350*time.Millisecond)
	v.SetDefault("preview.defaults.candidate", defaults.Candidate)
	v.SetDefault("preview.defaults.role", defaults.Role)
	v.SetDefault("preview.defaults.workspace", defaults.Workspace)
}

// Load reads config.{json,yaml} from path (or ./config and the working
// directory when path is empty) and overlays RENDERER_* environment
// variables. A missing file is not an error when no path was given.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("RENDERER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// names the Node service and the jobs service already use
	_ = v.BindEnv("server.port", "RENDERER_SERVER_PORT", "PORT")
	_ = v.BindEnv("log.level", "RENDERER_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("database.url", "RENDERER_DATABASE_URL", "JOBS_DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server.AllowedOrigins = normalizeOrigins(cfg.Server.AllowedOrigins)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Render.Timeout <= 0 {
		return fmt.Errorf("render.timeout must be > 0")
	}
	if c.Preview.Latency < 0 {
		return fmt.Errorf("preview.latency must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q must be json or text", c.Log.Format)
	}
	return nil
}

// normalizeOrigins accepts both a list and a single comma separated entry.
func normalizeOrigins(in []string) []string {
	out := []string{}
	for _, entry := range in {
		for _, origin := range strings.Split(entry, ",") {
			if o := strings.TrimSpace(origin); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the server settings. Every field has a default, so the
// config file is optional; INKWELL_* environment variables override both.
type Config struct {
	Addr       string
	DBPath     string
	Env        string
	PageSize   int
	CookieName string
	SessionTTL time.Duration
}

// Load reads the configuration from the given YAML file. An empty path
// loads defaults and environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("inkwell")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.env", "production")
	v.SetDefault("db.path", "data/badger")
	v.SetDefault("blog.page_size", 5)
	v.SetDefault("session.cookie_name", "inkwell_session")
	v.SetDefault("session.ttl_hours", 24)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Addr:       v.GetString("server.addr"),
		DBPath:     v.GetString("db.path"),
		Env:        v.GetString("server.env"),
		PageSize:   v.GetInt("blog.page_size"),
		CookieName: v.GetString("session.cookie_name"),
		SessionTTL: time.Duration(v.GetInt("session.ttl_hours")) * time.Hour,
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("blog.page_size must be positive, got %d", cfg.PageSize)
	}
	return cfg, nil
}

// IsDevelopment reports whether error details may be shown to the browser.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

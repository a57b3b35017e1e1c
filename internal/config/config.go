// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when one exists), loads them into structured Go types, and
// validates them so the service fails fast on bad configuration.
//
// Responsibilities:
//   - Load WAITLIST_* application settings and SUPABASE_* store credentials.
//   - Map env vars into a structured Go config (structs).
//   - Apply defaults for everything a small deployment should not need to set.
//   - Validate required values, including backend-specific blocks.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Key mapping:
	- Application settings use the WAITLIST_ prefix.
	- A double underscore marks one nesting level, so
	  WAITLIST_SERVER__PORT -> server.port -> Config.Server.Port
	- Store credentials keep their well-known names:
	  SUPABASE_URL              -> supabase.url
	  SUPABASE_SERVICE_ROLE_KEY -> supabase.service_role_key
*/

const (
	envPrefix         = "WAITLIST_"
	supabaseEnvPrefix = "SUPABASE_"
	nestingSeparator  = "__"
)

// Store backends.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

// Config is the root configuration object for the application.
//
// Database is a pointer because it only matters for the postgres backend.
// Observability is a pointer because it is optional; defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Supabase      SupabaseConfig       `koanf:"supabase"`
	Database      *DatabaseConfig      `koanf:"database"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
	BodyLimit          string   `koanf:"body_limit" validate:"required"`
}

// StoreConfig selects where signups are written.
type StoreConfig struct {
	Backend string `koanf:"backend" validate:"required,oneof=supabase postgres"`
	Table   string `koanf:"table" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// Lifetimes are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=1"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=1"`
	AutoMigrate     bool   `koanf:"auto_migrate"`
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config, applies defaults, and validates the result.
//
// Store credentials are deliberately not required here. Their absence is
// reported per request by the credentials provider, so a deployment that
// forgot them still answers with a clean 500 instead of crash-looping.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		key = strings.ReplaceAll(key, nestingSeparator, ".")

		// Comma-separated lists.
		if key == "server.cors_allowed_origins" {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load application env variables: %w", err)
	}

	err = k.Load(env.Provider(supabaseEnvPrefix, ".", func(key string) string {
		return "supabase." + strings.ToLower(strings.TrimPrefix(key, supabaseEnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load supabase env variables: %w", err)
	}

	// Start from the observability defaults so setting one observability
	// variable does not zero the rest of the block.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// applyDefaults fills every optional value that was not provided.
func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "development"
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.BodyLimit == "" {
		c.Server.BodyLimit = "64K"
	}

	if c.Store.Backend == "" {
		c.Store.Backend = BackendSupabase
	}
	if c.Store.Table == "" {
		c.Store.Table = "waitlist"
	}

	if c.Supabase.Timeout == 0 {
		c.Supabase.Timeout = DefaultSupabaseTimeout
	}

	if c.Database != nil {
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
		if c.Database.MaxOpenConns == 0 {
			c.Database.MaxOpenConns = 10
		}
		if c.Database.ConnMaxLifetime == 0 {
			c.Database.ConnMaxLifetime = 300
		}
		if c.Database.ConnMaxIdleTime == 0 {
			c.Database.ConnMaxIdleTime = 60
		}
	}

	// Observability is optional; inject defaults when it is missing.
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "json"
	}

	// Service name and environment always follow the primary config so
	// logs and traces are labelled consistently.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
}

// Validate runs struct-tag validation plus the cross-field rules that tags
// cannot express.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Store.Backend == BackendPostgres && c.Database == nil {
		return fmt.Errorf("config validation failed: database config is required for the %q store backend", BackendPostgres)
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

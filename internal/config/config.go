package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverPgx    = "pgx"

	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

const (
	defaultDriver         = DriverSQLite
	defaultPath           = "inventory.db"
	defaultSchemaVersion  = 2
	defaultOpTimeout      = 3 * time.Second
	defaultPasswordScheme = SchemePlain
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
}

type StoreConfig struct {
	Driver         string        `mapstructure:"driver"`
	Path           string        `mapstructure:"path"`
	DSN            string        `mapstructure:"dsn"`
	SchemaVersion  int           `mapstructure:"schema_version"`
	OpTimeout      time.Duration `mapstructure:"op_timeout"`
	PasswordScheme string        `mapstructure:"password_scheme"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Driver:         defaultDriver,
			Path:           defaultPath,
			SchemaVersion:  defaultSchemaVersion,
			OpTimeout:      defaultOpTimeout,
			PasswordScheme: defaultPasswordScheme,
		},
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load reads configuration from the optional file at path, then from
// INVENTORY_* environment variables. DATABASE_URL is honoured as the pgx DSN.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("store.dsn", "INVENTORY_STORE_DSN", "DATABASE_URL"); err != nil {
		return Config{}, fmt.Errorf("bind store.dsn: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("store.schema_version", d.Store.SchemaVersion)
	v.SetDefault("store.op_timeout", d.Store.OpTimeout)
	v.SetDefault("store.password_scheme", d.Store.PasswordScheme)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("%w: store.path is required for the sqlite driver", ErrInvalidConfig)
		}
	case DriverPgx:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("%w: store.dsn is required for the pgx driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported store.driver %q", ErrInvalidConfig, c.Store.Driver)
	}

	if c.Store.SchemaVersion < 1 {
		return fmt.Errorf("%w: store.schema_version must be positive", ErrInvalidConfig)
	}
	if c.Store.OpTimeout <= 0 {
		return fmt.Errorf("%w: store.op_timeout must be positive", ErrInvalidConfig)
	}

	switch c.Store.PasswordScheme {
	case SchemePlain, SchemeBcrypt:
	default:
		return fmt.Errorf("%w: unsupported store.password_scheme %q", ErrInvalidConfig, c.Store.PasswordScheme)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unsupported log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

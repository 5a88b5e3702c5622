package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. BLOG_SESSION_SECRET.
const EnvPrefix = "BLOG"

// Config holds all application configuration.
type Config struct {
	Port    string        `mapstructure:"port"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Session SessionConfig `mapstructure:"session"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Posts   PostsConfig   `mapstructure:"posts"`
	Feed    FeedConfig    `mapstructure:"feed"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

type DBConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
	Secure     bool          `mapstructure:"secure"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type PostsConfig struct {
	PageLimit int `mapstructure:"page_limit"`
}

type FeedConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "blog.db")
	v.SetDefault("db.dsn", "")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", "blog_session")
	v.SetDefault("session.ttl", "168h")
	v.SetDefault("session.secure", false)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("posts.page_limit", 100)
	v.SetDefault("feed.interval", "5s")
}

// Flags declares the command-line overrides.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to config file (default configs/config.yml)")
	fs.String("port", "", "HTTP listen port")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	return fs
}

// Load merges defaults, the config file, BLOG_* environment variables and
// parsed flags (highest precedence). fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var explicit string
	if fs != nil {
		explicit, _ = fs.GetString("config")
		if f := fs.Lookup("port"); f != nil {
			_ = v.BindPFlag("port", f)
		}
		if f := fs.Lookup("log-level"); f != nil {
			_ = v.BindPFlag("log.level", f)
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing default file is fine; a missing explicit one is not
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// placeholderSecrets are sample values that anyone could sign cookies with.
var placeholderSecrets = map[string]struct{}{
	"change-me-in-production": {},
	"changeme":                {},
	"secret":                  {},
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite":
	case "postgres":
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret is empty; set it in the config file or %s_SESSION_SECRET", EnvPrefix)
	}
	if _, known := placeholderSecrets[c.Session.Secret]; known {
		return fmt.Errorf("session.secret is a published placeholder; set a private value via %s_SESSION_SECRET", EnvPrefix)
	}
	return nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DB: %s, Session: %s ttl=%s secret=*** (masked) ***}",
		c.Port, c.DB.Driver, c.Session.CookieName, c.Session.TTL)
}

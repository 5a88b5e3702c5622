package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("BLOG_SESSION_SECRET", "from-env")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.DB.Driver != "sqlite" || cfg.DB.Path != "blog.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Session.Secret != "from-env" || cfg.Session.TTL != 168*time.Hour {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Posts.PageLimit != 100 || cfg.Auth.BcryptCost != 10 || cfg.Feed.Interval != 5*time.Second {
		t.Fatalf("unexpected tuning defaults: %+v", cfg)
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	if _, err := Load(nil); err == nil || !strings.Contains(err.Error(), "session.secret") {
		t.Fatalf("expected session.secret error, got %v", err)
	}
}

func TestLoad_FileEnvAndFlagPrecedence(t *testing.T) {
	path := writeConfig(t, `
port: "9000"
log:
  level: warn
db:
  path: ./data/file.db
session:
  secret: from-file
  ttl: 30m
`)
	t.Setenv("BLOG_DB_PATH", "./data/env.db")

	fs := Flags("test")
	if err := fs.Parse([]string{"--config", path, "--port", "9100"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("flag should win: port=%q", cfg.Port)
	}
	if cfg.DB.Path != "./data/env.db" {
		t.Errorf("env should beat file: db.path=%q", cfg.DB.Path)
	}
	if cfg.Log.Level != "warn" || cfg.Session.Secret != "from-file" || cfg.Session.TTL != 30*time.Minute {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	t.Setenv("BLOG_SESSION_SECRET", "x")
	fs := Flags("test")
	_ = fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yml")})

	if _, err := Load(fs); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{DB: DBConfig{Driver: "sqlite"}, Session: SessionConfig{Secret: "s"}}
	}
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"sqlite ok", func(*Config) {}, false},
		{"postgres without dsn", func(c *Config) { c.DB.Driver = "postgres" }, true},
		{"postgres with dsn", func(c *Config) { c.DB.Driver = "postgres"; c.DB.DSN = "postgres://x" }, false},
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }, true},
		{"empty secret", func(c *Config) { c.Session.Secret = "" }, true},
		{"placeholder secret", func(c *Config) { c.Session.Secret = "change-me-in-production" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			if err := c.Validate(); (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestConfig_StringMasksSecret(t *testing.T) {
	c := Config{Session: SessionConfig{Secret: "super-secret-value"}}
	if strings.Contains(c.String(), "super-secret-value") {
		t.Fatalf("secret leaked: %s", c.String())
	}
}

func TestLoad_ShippedConfigNeedsPrivateSecret(t *testing.T) {
	load := func() (*Config, error) {
		fs := Flags("test")
		if err := fs.Parse([]string{"--config", filepath.Join("..", "..", "configs", "config.yml")}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}
		return Load(fs)
	}

	if _, err := load(); err == nil || !strings.Contains(err.Error(), "session.secret") {
		t.Fatalf("shipped config must not start without a secret, got %v", err)
	}

	t.Setenv("BLOG_SESSION_SECRET", "change-me-in-production")
	if _, err := load(); err == nil || !strings.Contains(err.Error(), "placeholder") {
		t.Fatalf("placeholder secret accepted, got %v", err)
	}

	t.Setenv("BLOG_SESSION_SECRET", "a-private-deployment-key")
	cfg, err := load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.Secret != "a-private-deployment-key" {
		t.Fatalf("env secret not applied: %q", cfg.Session.Secret)
	}
}

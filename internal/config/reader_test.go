package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// unsetEnv removes keys for the duration of the test so that
// cleanenv falls back to env-default values.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestEnvReader_Defaults(t *testing.T) {
	unsetEnv(t,
		"ENV", "PORT", "HTTP_HOST", "HTTP_SHUTDOWN_TIMEOUT",
		"CORS_ALLOWED_ORIGINS", "STORAGE_DRIVER",
	)

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if cfg.Env != EnvProd {
		t.Fatalf("env=%q", cfg.Env)
	}
	if cfg.HTTP.Host != "0.0.0.0" || cfg.HTTP.Port != "8000" {
		t.Fatalf("http=%+v", cfg.HTTP)
	}
	if cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout=%s", cfg.HTTP.ShutdownTimeout)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.HTTP.AllowedOrigins[0] != "*" {
		t.Fatalf("origins=%v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Fatalf("driver=%q", cfg.Storage.Driver)
	}
}

func TestEnvReader_Overrides(t *testing.T) {
	t.Setenv("ENV", EnvDev)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	t.Setenv("POSTGRES_PORT", "6543")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if cfg.Env != EnvDev || cfg.HTTP.Port != "9090" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 || cfg.HTTP.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins=%v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Storage.Driver != StoragePostgres || cfg.Postgres.Port != 6543 {
		t.Fatalf("storage=%+v postgres=%+v", cfg.Storage, cfg.Postgres)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:     EnvProd,
			HTTP:    HTTPConfig{Port: "8000"},
			Storage: StorageConfig{Driver: StorageMemory},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown env", mutate: func(c *Config) { c.Env = "staging" }, wantErr: "unknown env"},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "redis" }, wantErr: "unknown storage driver"},
		{name: "mysql without dsn", mutate: func(c *Config) { c.Storage.Driver = StorageMySQL }, wantErr: "MYSQL_DSN"},
		{name: "empty port", mutate: func(c *Config) { c.HTTP.Port = "" }, wantErr: "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err=%v want %q", err, tt.wantErr)
			}
		})
	}
}

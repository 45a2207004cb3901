package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBackend(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"postgres://user@localhost/workforce", BackendPostgres},
		{"postgresql://localhost/workforce", BackendPostgres},
		{"sqlite:workforce.db", BackendSQLite},
		{"sqlite::memory:", BackendSQLite},
		{"memory:", BackendMemory},
		{"mysql://root@localhost/db", ""},
	}
	for _, tc := range tests {
		if got := (Config{DatabaseURL: tc.url}).Backend(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.url, tc.want, got)
		}
	}
	if path := (Config{DatabaseURL: "sqlite::memory:"}).SQLitePath(); path != ":memory:" {
		t.Fatalf("unexpected sqlite path %q", path)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SEED_EMPLOYEES", "")
	t.Setenv("TOKEN_TTL", "90m")
	cfg := Load()
	if cfg.DatabaseURL != "sqlite:workforce.db" {
		t.Fatalf("unexpected default database url %q", cfg.DatabaseURL)
	}
	if cfg.SeedEmployees != 50 || cfg.ReportAttendanceLimit != 30 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 90*time.Minute {
		t.Fatalf("expected token ttl from env, got %v", cfg.TokenTTL)
	}
}

func TestValidate(t *testing.T) {
	base := Config{DatabaseURL: "memory:", TokenTTL: time.Hour, SeedEmployees: 50}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.DatabaseURL = "mysql://x" }},
		{"empty sqlite path", func(c *Config) { c.DatabaseURL = "sqlite:" }},
		{"production without secret", func(c *Config) { c.Environment = "production" }},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }},
		{"negative seed", func(c *Config) { c.SeedEmployees = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadBudgets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budgets.yaml")
	data := []byte("departments:\n  Engineering: 1500000\n  Sales: 900000.5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	budgets, err := LoadBudgets(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ceiling, ok := budgets.Ceiling("Sales"); !ok || ceiling != 900000.5 {
		t.Fatalf("unexpected sales ceiling %v", ceiling)
	}
	if _, ok := budgets.Ceiling("HR"); ok {
		t.Fatal("HR should have no ceiling")
	}

	none, err := LoadBudgets("")
	if err != nil || none != nil {
		t.Fatalf("empty path should yield no budgets, got %v %v", none, err)
	}

	if _, err := ParseBudgets([]byte("departments:\n  HR: -5\n")); err == nil {
		t.Fatal("expected error for negative ceiling")
	}
}

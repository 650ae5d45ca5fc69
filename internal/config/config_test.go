package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"smartbudget-go/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "")
	t.Setenv("LOOKUP_CACHE_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTPPort)
	}
	if cfg.Lookups.CacheTTL != 5*time.Minute {
		t.Fatalf("expected default ttl, got %v", cfg.Lookups.CacheTTL)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected default origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	content := "HTTP_PORT=9090\nAMQP_EXCHANGE=\"budget.events\"\n# comment\nSUPABASE_JWT_SECRET=from-file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	nested := filepath.Join(dir, "cmd", "smartbudget")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Chdir(nested)

	t.Setenv("SUPABASE_JWT_SECRET", "from-env")
	t.Setenv("HTTP_PORT", "")
	os.Unsetenv("HTTP_PORT")
	t.Setenv("AMQP_EXCHANGE", "")
	os.Unsetenv("AMQP_EXCHANGE")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected port from .env, got %q", cfg.HTTPPort)
	}
	if cfg.Events.Exchange != "budget.events" {
		t.Fatalf("expected exchange from .env, got %q", cfg.Events.Exchange)
	}
	if cfg.Supabase.JWTSecret != "from-env" {
		t.Fatalf("expected env to win over .env, got %q", cfg.Supabase.JWTSecret)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Config{
		HTTPPort: "http",
		DB:       DBConfig{},
		Supabase: SupabaseConfig{URL: ""},
		Lookups:  LookupsConfig{CacheTTL: -time.Second},
		Events:   EventsConfig{AMQPURL: "amqp://localhost"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"HTTP_PORT", "DB_DSN", "SUPABASE_URL", "LOOKUP_CACHE_TTL", "AMQP_EXCHANGE"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %q", want, err.Error())
		}
	}
}

func TestValidateAcceptsSkipAuth(t *testing.T) {
	cfg := Config{
		HTTPPort: "8080",
		DB:       DBConfig{DSN: "postgres://localhost/smartbudget"},
		Supabase: SupabaseConfig{SkipAuth: true},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", " https://a.example , ,https://b.example")
	got := getEnvList("TEST_LIST", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", TimeZone: "UTC"}
	if got := cfg.GetDSN(); got != "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC" {
		t.Fatalf("unexpected dsn %q", got)
	}
	cfg.DSN = "postgres://x"
	if got := cfg.GetDSN(); got != "postgres://x" {
		t.Fatalf("expected explicit dsn, got %q", got)
	}
}

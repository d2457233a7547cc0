package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("got %+v, want defaults", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file not written: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(reloaded, cfg) {
		t.Errorf("saved defaults do not round trip: %+v", reloaded)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
[server]
rate_limit = 10

[dataset]
path = "/tmp/log.csv"

[ai]
enabled = true
endpoint = "https://example.openai.azure.com"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.RateLimit != 10 || cfg.Server.RateWindow() != time.Minute {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Dataset.Path != "/tmp/log.csv" {
		t.Errorf("dataset path = %q", cfg.Dataset.Path)
	}
	if !cfg.AI.Enabled || cfg.AI.Endpoint != "https://example.openai.azure.com" || cfg.AI.Debounce() != 300*time.Millisecond {
		t.Errorf("unexpected ai config %+v", cfg.AI)
	}
	if cfg.CLI.DefaultUser != "USER_004_MICHAEL" {
		t.Errorf("missing section should keep defaults, got %+v", cfg.CLI)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeFile(t, `
[server]
rate_limit = "lots"
max_prefix = 40

[ai]
cache_ttl_seconds = 60
deployment = "suggest-mini"

[cli]
default_user = "USER_005_EMMA"
simulate_typing = false
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.RateLimit != 30 || cfg.Server.MaxPrefix != 40 {
		t.Errorf("bad value should fall back to default: %+v", cfg.Server)
	}
	if cfg.AI.CacheTTL() != time.Minute || cfg.AI.Deployment != "suggest-mini" {
		t.Errorf("unexpected ai config %+v", cfg.AI)
	}
	if cfg.CLI.DefaultUser != "USER_005_EMMA" || cfg.CLI.SimulateTyping {
		t.Errorf("unexpected cli config %+v", cfg.CLI)
	}
}

func TestLoadConfigUnparseable(t *testing.T) {
	path := writeFile(t, "[server\nrate_limit = ")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("ADAPTSERVE_TEST_KEY", "k-123")
	ai := AIConfig{APIKeyEnv: "ADAPTSERVE_TEST_KEY"}
	if ai.APIKey() != "k-123" {
		t.Errorf("APIKey = %q", ai.APIKey())
	}
	if (AIConfig{}).APIKey() != "" {
		t.Error("empty env name should yield no key")
	}
}

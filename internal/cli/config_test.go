package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DefaultType != "bar" {
		t.Errorf("DefaultType = %q, want bar", cfg.DefaultType)
	}
	if cfg.Server.Store != "memory" {
		t.Errorf("Server.Store = %q, want memory", cfg.Server.Store)
	}
	if cfg.Server.Addr == "" {
		t.Error("Server.Addr should have a default")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
default_type = "line"

[server]
addr = ":9000"
store = "redis"
redis_addr = "redis.internal:6379"
cache_ttl = "30m"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultType != "line" {
		t.Errorf("DefaultType = %q, want line", cfg.DefaultType)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
	}
	if cfg.Server.Store != "redis" {
		t.Errorf("Server.Store = %q, want redis", cfg.Server.Store)
	}
	if got := cfg.ParsedCacheTTL(); got != 30*time.Minute {
		t.Errorf("ParsedCacheTTL() = %v, want 30m", got)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`default_type = "radar"`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultType != "radar" {
		t.Errorf("DefaultType = %q, want radar", cfg.DefaultType)
	}
	// Unset sections keep their defaults.
	if cfg.Server.Store != "memory" {
		t.Errorf("Server.Store = %q, want default memory", cfg.Server.Store)
	}
}

func TestLoadConfigOrDefaultMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := LoadConfigOrDefault()
	if cfg.DefaultType != "bar" {
		t.Errorf("DefaultType = %q, want default bar", cfg.DefaultType)
	}
}

func TestParsedCacheTTL(t *testing.T) {
	tests := []struct {
		ttl  string
		want time.Duration
	}{
		{"", 0},
		{"1h", time.Hour},
		{"90s", 90 * time.Second},
		{"not-a-duration", 0},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Server.CacheTTL = tt.ttl
		if got := cfg.ParsedCacheTTL(); got != tt.want {
			t.Errorf("ParsedCacheTTL(%q) = %v, want %v", tt.ttl, got, tt.want)
		}
	}
}

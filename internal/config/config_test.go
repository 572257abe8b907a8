package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for absent file", err)
	}

	if cfg.Network != "local" {
		t.Errorf("Network = %q, want local", cfg.Network)
	}
	if cfg.Prefix != "VITE_" {
		t.Errorf("Prefix = %q, want VITE_", cfg.Prefix)
	}
	if cfg.Output != ".env" {
		t.Errorf("Output = %q, want .env", cfg.Output)
	}
	if cfg.ActiveInterval.Std() != 5*time.Second {
		t.Errorf("ActiveInterval = %v, want 5s", cfg.ActiveInterval)
	}
	if cfg.CacheTTL != cfg.ActiveInterval {
		t.Errorf("CacheTTL = %v, want to follow ActiveInterval", cfg.CacheTTL)
	}
}

func TestLoad_CacheTTLFollowsActiveInterval(t *testing.T) {
	dir := t.TempDir()
	content := `
active_interval: 30s
redis_addr: localhost:6379
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CacheTTL.Std() != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s (an unset TTL must not pin a configured cache forever)", cfg.CacheTTL)
	}
}

func TestLoad_ExplicitCacheTTL(t *testing.T) {
	dir := t.TempDir()
	content := `
active_interval: 30s
cache_ttl: 2m
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CacheTTL.Std() != 2*time.Minute {
		t.Errorf("CacheTTL = %v, want 2m", cfg.CacheTTL)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := `
network: ic
host: https://icp-api.io
prefix: PUBLIC_
output: .env.production
active_interval: 30s
extra:
  FEATURE_FLAGS: "sns,ckbtc"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Network != "ic" {
		t.Errorf("Network = %q, want ic", cfg.Network)
	}
	if cfg.Prefix != "PUBLIC_" {
		t.Errorf("Prefix = %q, want PUBLIC_", cfg.Prefix)
	}
	if cfg.ActiveInterval.Std() != 30*time.Second {
		t.Errorf("ActiveInterval = %v, want 30s", cfg.ActiveInterval)
	}
	if cfg.Extra["FEATURE_FLAGS"] != "sns,ckbtc" {
		t.Errorf("Extra = %v", cfg.Extra)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("network: staging\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Network != "staging" {
		t.Errorf("Network = %q, want staging", cfg.Network)
	}
	if cfg.Output != ".env" {
		t.Errorf("Output = %q, want default kept", cfg.Output)
	}
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("network: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on a malformed file")
	}
}

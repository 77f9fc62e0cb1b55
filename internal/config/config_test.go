package config

import (
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8000" {
		t.Errorf("Addr = %q, want :8000", cfg.Addr)
	}
	if cfg.JWTSecret == "" {
		t.Error("expected a generated jwt secret")
	}

	if _, err := os.Stat(filepath.Join(home, ".taskdesk", "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	again, err := Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if again.JWTSecret != cfg.JWTSecret {
		t.Error("jwt secret changed between loads")
	}
}

func TestLoadExpandsUploadDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := os.MkdirAll(filepath.Join(home, ".taskdesk"), 0755); err != nil {
		t.Fatal(err)
	}
	content := "addr = \":9000\"\nupload_dir = \"~/uploads\"\njwt_secret = \"s\"\ntoken_ttl = \"2h\"\n"
	if err := os.WriteFile(filepath.Join(home, ".taskdesk", "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UploadDir != filepath.Join(home, "uploads") {
		t.Errorf("UploadDir = %q", cfg.UploadDir)
	}
	d, err := cfg.TokenDuration()
	if err != nil || d != 2*time.Hour {
		t.Errorf("TokenDuration = %v, %v", d, err)
	}
}

func TestTokenDurationRejectsBadValues(t *testing.T) {
	for _, ttl := range []string{"", "soon", "-1h", "0s"} {
		cfg := &Config{TokenTTL: ttl}
		if _, err := cfg.TokenDuration(); err == nil {
			t.Errorf("TokenDuration(%q) expected error", ttl)
		}
	}
}

func TestLoadFailsWithoutRandomness(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	readRandom = func([]byte) (int, error) { return 0, errors.New("entropy exhausted") }
	t.Cleanup(func() { readRandom = rand.Read })

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without a secret")
	}
	if _, err := os.Stat(filepath.Join(home, ".taskdesk", "config.toml")); !os.IsNotExist(err) {
		t.Errorf("config written despite failure: %v", err)
	}
}

package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Addr      string `toml:"addr"`
	UploadDir string `toml:"upload_dir"`
	JWTSecret string `toml:"jwt_secret"`
	TokenTTL  string `toml:"token_ttl"`
}

// readRandom is swapped in tests.
var readRandom = rand.Read

// DefaultConfig returns the defaults with a freshly generated signing secret.
func DefaultConfig() (*Config, error) {
	dir, err := TaskdeskDir()
	if err != nil {
		return nil, err
	}
	secret, err := randomSecret()
	if err != nil {
		return nil, err
	}
	return &Config{
		Addr:      ":8000",
		UploadDir: filepath.Join(dir, "media"),
		JWTSecret: secret,
		TokenTTL:  "24h",
	}, nil
}

func TaskdeskDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".taskdesk"), nil
}

func ConfigPath() (string, error) {
	dir, err := TaskdeskDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func DatabasePath() (string, error) {
	dir, err := TaskdeskDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db", "taskdesk.sqlite"), nil
}

func ErrorLogPath() (string, error) {
	dir, err := TaskdeskDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "errors.log"), nil
}

func EnsureDirectories() error {
	dir, err := TaskdeskDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(dir, "db"), 0755); err != nil {
		return err
	}

	return nil
}

// Load reads config.toml, writing one with defaults if it does not exist yet.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", configPath, err)
	}

	cfg.UploadDir = expandPath(cfg.UploadDir)

	if _, err := cfg.TokenDuration(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// TokenDuration parses TokenTTL.
func (c *Config) TokenDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid token_ttl %q: %w", c.TokenTTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid token_ttl %q: must be positive", c.TokenTTL)
	}
	return d, nil
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := readRandom(b); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

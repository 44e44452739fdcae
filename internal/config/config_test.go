package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadClientDefaults(t *testing.T) {
	cfg, err := LoadClient("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8080" {
		t.Fatalf("unexpected server url: %q", cfg.ServerURL)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout())
	}
	if cfg.NumPlayers != 2 {
		t.Fatalf("unexpected player count: %d", cfg.NumPlayers)
	}
}

func TestLoadClientFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	data := []byte("server_url: http://game:9000\nrequest_timeout_sec: 3\nnum_players: 4\ncharacters:\n  - red.png\n  - blue.png\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadClient(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.ServerURL != "http://game:9000" || cfg.RequestTimeoutSec != 3 || cfg.NumPlayers != 4 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if len(cfg.Characters) != 2 || cfg.Characters[0] != "red.png" {
		t.Fatalf("characters not applied: %v", cfg.Characters)
	}

	t.Setenv("PROBWALK_SERVER_URL", "http://env:7000")
	t.Setenv("PROBWALK_NUM_PLAYERS", "3")
	cfg, err = LoadClient(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.ServerURL != "http://env:7000" || cfg.NumPlayers != 3 {
		t.Fatalf("env should win over the file: %+v", cfg)
	}
	if cfg.RequestTimeoutSec != 3 {
		t.Fatalf("unset env must leave the file value alone")
	}
}

func TestLoadClientMissingFile(t *testing.T) {
	if _, err := LoadClient(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("an explicitly named missing file is an error")
	}
}

func TestLoadServer(t *testing.T) {
	cfg, err := LoadServer("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.DatabaseURL != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	t.Setenv("PROBWALK_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/probwalk")
	cfg, err = LoadServer("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.DatabaseURL != "postgres://localhost/probwalk" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

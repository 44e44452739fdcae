// Package config loads settings for both binaries: an optional YAML file
// with environment-variable overrides on top. The .env loading itself
// happens in the mains via godotenv.
package config

import (
	"os"
	"strconv"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type Client struct {
	ServerURL         string   `yaml:"server_url"`
	RequestTimeoutSec int      `yaml:"request_timeout_sec"`
	NumPlayers        int      `yaml:"num_players"`
	Characters        []string `yaml:"characters"`
}

func (c Client) Timeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

type Server struct {
	Addr        string `yaml:"addr"`
	DatabaseURL string `yaml:"database_url"`
}

func loadFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadClient reads the client config. path may be empty; env vars win over
// the file.
func LoadClient(path string) (Client, error) {
	cfg := Client{
		ServerURL:         "http://localhost:8080",
		RequestTimeoutSec: 10,
		NumPlayers:        2,
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Client{}, err
		}
	}
	cfg.ServerURL = envString("PROBWALK_SERVER_URL", cfg.ServerURL)
	cfg.RequestTimeoutSec = envInt("PROBWALK_TIMEOUT_SEC", cfg.RequestTimeoutSec)
	cfg.NumPlayers = envInt("PROBWALK_NUM_PLAYERS", cfg.NumPlayers)
	return cfg, nil
}

// LoadServer reads the server config. DATABASE_URL enables game records.
func LoadServer(path string) (Server, error) {
	cfg := Server{Addr: ":8080"}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Server{}, err
		}
	}
	cfg.Addr = envString("PROBWALK_ADDR", cfg.Addr)
	cfg.DatabaseURL = envString("DATABASE_URL", cfg.DatabaseURL)
	return cfg, nil
}

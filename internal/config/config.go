// Package config loads configuration from environment variables, an
// optional .env file, and an optional YAML file with ${VAR} expansion.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SMTPConfig holds the outbound mail transport settings. When any of
// Host/Port/Username/Password is empty the sender falls back to logging.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Secure   bool
}

// Configured reports whether all required transport fields are present.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.Port != "" && s.Username != "" && s.Password != ""
}

// Config holds all settings for the server.
type Config struct {
	Port        int
	FrontendURL string

	SupabaseURL string
	SupabaseKey string

	SMTP SMTPConfig

	UploadDir       string
	UploadURLPrefix string
}

// rawConfig mirrors the optional YAML file structure.
type rawConfig struct {
	Server struct {
		Port        int    `yaml:"port"`
		FrontendURL string `yaml:"frontend_url"`
	} `yaml:"server"`
	Supabase struct {
		URL string `yaml:"url"`
		Key string `yaml:"key"`
	} `yaml:"supabase"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
		Secure   bool   `yaml:"secure"`
	} `yaml:"smtp"`
	Uploads struct {
		Dir string `yaml:"dir"`
	} `yaml:"uploads"`
}

// Load reads configuration. YAML values (when CONFIG_PATH is set) take
// precedence over environment variables; ${VAR} references inside the YAML
// are expanded before parsing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var raw rawConfig
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config YAML: %w", err)
		}
	}

	cfg := &Config{
		Port:        firstNonZero(raw.Server.Port, envOrDefaultInt("PORT", 8080)),
		FrontendURL: firstNonEmpty(raw.Server.FrontendURL, envOrDefault("FRONTEND_URL", "*")),
		SupabaseURL: firstNonEmpty(raw.Supabase.URL, os.Getenv("SUPABASE_URL")),
		SupabaseKey: firstNonEmpty(raw.Supabase.Key, os.Getenv("SUPABASE_KEY")),
		SMTP: SMTPConfig{
			Host:     firstNonEmpty(raw.SMTP.Host, os.Getenv("SMTP_HOST")),
			Port:     firstNonEmpty(raw.SMTP.Port, os.Getenv("SMTP_PORT")),
			Username: firstNonEmpty(raw.SMTP.Username, os.Getenv("SMTP_USER")),
			Password: firstNonEmpty(raw.SMTP.Password, os.Getenv("SMTP_PASS")),
			From:     firstNonEmpty(raw.SMTP.From, os.Getenv("SMTP_FROM")),
			Secure:   raw.SMTP.Secure || envBool("SMTP_SECURE"),
		},
		UploadDir:       firstNonEmpty(raw.Uploads.Dir, envOrDefault("UPLOAD_DIR", "./uploads")),
		UploadURLPrefix: "/uploads",
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_KEY must be configured")
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

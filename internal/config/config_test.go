package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon-key")
	t.Setenv("CONFIG_PATH", "")
}

func TestLoad_MissingStoreSettingsFails(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_KEY", "")
	t.Setenv("CONFIG_PATH", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without store settings")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("UPLOAD_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
	if cfg.FrontendURL != "*" {
		t.Errorf("expected permissive default origin, got %q", cfg.FrontendURL)
	}
	if cfg.UploadDir != "./uploads" || cfg.UploadURLPrefix != "/uploads" {
		t.Errorf("unexpected upload settings %q %q", cfg.UploadDir, cfg.UploadURLPrefix)
	}
	if cfg.SMTP.Configured() {
		t.Error("SMTP must be unconfigured without transport settings")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("FRONTEND_URL", "https://zidalco.com")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASS", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("expected port override, got %d", cfg.Port)
	}
	if cfg.FrontendURL != "https://zidalco.com" {
		t.Errorf("expected origin override, got %q", cfg.FrontendURL)
	}
	if !cfg.SMTP.Configured() {
		t.Error("expected SMTP configured with all four transport fields")
	}
}

func TestLoad_YAMLTakesPrecedenceAndExpandsVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SECRET_SMTP_PASS", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 7070
smtp:
  host: smtp.example.com
  port: "587"
  username: mailer
  password: ${SECRET_SMTP_PASS}
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("YAML port must beat the environment, got %d", cfg.Port)
	}
	if cfg.SMTP.Password != "from-env" {
		t.Errorf("expected ${VAR} expansion, got %q", cfg.SMTP.Password)
	}
}

func TestSMTPConfig_ConfiguredRequiresAllFour(t *testing.T) {
	full := SMTPConfig{Host: "h", Port: "25", Username: "u", Password: "p"}
	if !full.Configured() {
		t.Error("expected configured transport")
	}

	missing := full
	missing.Password = ""
	if missing.Configured() {
		t.Error("a partial transport must count as unconfigured")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Auth:   AuthConfig{JWTSecret: "0123456789abcdef", SessionTTL: time.Hour},
		Import: ImportConfig{MaxRows: 10},
		Seed:   SeedConfig{AdminUsername: "admin", AdminPassword: "pw"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero ttl", func(c *Config) { c.Auth.SessionTTL = 0 }, true},
		{"zero max rows", func(c *Config) { c.Import.MaxRows = 0 }, true},
		{"empty admin password", func(c *Config) { c.Seed.AdminPassword = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server:\n  port: 9090\nauth:\n  jwt_secret: \"file-secret-0123456789\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	t.Setenv("LEARNEXA_IMPORT_MAX_ROWS", "25")
	t.Setenv("LEARNEXA_AUTH_SESSION_TTL", "2h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() 失败: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("期望配置文件端口 9090，实际 %d", cfg.Server.Port)
	}
	if cfg.Import.MaxRows != 25 {
		t.Errorf("期望环境变量覆盖 max_rows=25，实际 %d", cfg.Import.MaxRows)
	}
	if cfg.Auth.SessionTTL != 2*time.Hour {
		t.Errorf("期望 session_ttl=2h，实际 %s", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.Cookie.Name != "learnexa_session" {
		t.Errorf("期望默认 Cookie 名，实际 %q", cfg.Auth.Cookie.Name)
	}
	if cfg.Database.DSN() == "" {
		t.Error("DSN 不应为空")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	t.Setenv("LEARNEXA_AUTH_JWT_SECRET", "")

	if _, err := Load(path); err == nil {
		t.Error("缺少 jwt_secret 时应返回错误")
	}
}

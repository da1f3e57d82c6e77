package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("UNOLO_AUTH_JWT_SECRET", "test-secret-key-for-unit-testing")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("期望默认端口 3000，实际=%d", cfg.Server.Port)
	}
	if cfg.Database.Path != "./data/database.sqlite" {
		t.Errorf("期望默认镜像路径，实际=%s", cfg.Database.Path)
	}
	if !cfg.Database.SerializeWrites {
		t.Error("默认应串行化写操作")
	}
	if cfg.Auth.AccessTokenTTL != 24*time.Hour {
		t.Errorf("期望 AccessTokenTTL=24h，实际=%v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Server.LoginWindow != time.Minute {
		t.Errorf("期望 LoginWindow=1m，实际=%v", cfg.Server.LoginWindow)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 8088
db:
  path: /tmp/unolo-test.sqlite
  serialize_writes: false
auth:
  jwt_secret: file-secret-0123456789
log:
  level: debug
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	t.Setenv("UNOLO_SERVER_PORT", "9099")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}

	if cfg.Server.Port != 9099 {
		t.Errorf("环境变量应覆盖端口，实际=%d", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/unolo-test.sqlite" {
		t.Errorf("期望 db.path 来自文件，实际=%s", cfg.Database.Path)
	}
	if cfg.Database.SerializeWrites {
		t.Error("期望 serialize_writes=false")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("期望 log.level=debug，实际=%s", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 3000},
			Database: DatabaseConfig{Path: "db.sqlite"},
			Auth:     AuthConfig{JWTSecret: "0123456789abcdef"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"合法配置", func(c *Config) {}, false},
		{"空密钥", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"密钥过短", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"空镜像路径", func(c *Config) { c.Database.Path = "  " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestRead_NoSecretRequired(t *testing.T) {
	t.Setenv("UNOLO_AUTH_JWT_SECRET", "")
	t.Chdir(t.TempDir())

	cfg, err := Read("")
	if err != nil {
		t.Fatalf("Read 不应校验密钥: %v", err)
	}
	if cfg.Database.Path != "./data/database.sqlite" {
		t.Errorf("期望默认镜像路径，实际=%s", cfg.Database.Path)
	}

	if _, err := Load(""); err == nil {
		t.Error("缺少密钥时 Load 应失败")
	}
}

func TestRead_EmptyPathRejected(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UNOLO_DB_PATH", " ")

	if _, err := Read(""); err == nil {
		t.Error("db.path 为空时 Read 应失败")
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "操作失败"
	testErr := errors.New("internal database error")

	cfg := &Config{Server: ServerConfig{Mode: "release"}}
	// nil err 返回 fallback
	assert.Equal(t, fallback, cfg.SafeErrorMessage(nil, fallback))
	// release 模式返回 fallback，不暴露错误详情
	assert.Equal(t, fallback, cfg.SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	cfg.Server.Mode = "debug"
	assert.Equal(t, "internal database error", cfg.SafeErrorMessage(testErr, fallback))

	// nil 配置视为开发环境
	var nilCfg *Config
	assert.Equal(t, "internal database error", nilCfg.SafeErrorMessage(testErr, fallback))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "database.db", cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Session.ExpireTime)
	assert.Equal(t, "admin", cfg.Auth.BootstrapAdminUsername)
	assert.True(t, cfg.Auth.AllowAdminRegistration)
	// 开发模式下使用默认密钥并给出提示
	assert.Equal(t, devSessionSecret, cfg.Session.Secret)
	assert.NotEmpty(t, cfg.Warnings)
}

func TestLoadConfig_ExternalFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "server:\n  port: \":9090\"\nsession:\n  expire_hours: 2\nexport:\n  logo_path: \"/tmp/logo.png\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PROJECTLEDGER_SESSION_SECRET", "from-env")
	t.Setenv("PROJECTLEDGER_DATABASE_PATH", "/var/lib/ledger.db")
	t.Setenv("PROJECTLEDGER_AUTH_ALLOW_ADMIN_REGISTRATION", "false")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Session.ExpireTime)
	assert.Equal(t, "/tmp/logo.png", cfg.Export.LogoPath)
	assert.Equal(t, "from-env", cfg.Session.Secret)
	assert.Equal(t, "/var/lib/ledger.db", cfg.Database.Path)
	// 部署时可关闭管理员自助注册
	assert.False(t, cfg.Auth.AllowAdminRegistration)
}

func TestLoadConfig_MissingExternalFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_ReleaseRequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROJECTLEDGER_SERVER_MODE", "release")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.secret")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Mode: "debug"},
		Database: DatabaseConfig{Driver: "postgres"},
		Session:  SessionConfig{Secret: "x"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")

	cfg.Database = DatabaseConfig{Driver: "mysql", Host: "db", DBName: "ledger"}
	assert.NoError(t, cfg.Validate())

	cfg.Server.TrustedProxies = []string{"127.0.0.1", "10.0.0.0/8", "::1"}
	assert.NoError(t, cfg.Validate())

	cfg.Server.TrustedProxies = []string{"10.0.0.0/33"}
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trusted_proxies")

	cfg.Server.TrustedProxies = nil
	cfg.Server.Mode = "staging"
	assert.Error(t, cfg.Validate())
}

func TestSummary_HidesPassword(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "mysql", Username: "u", Password: "p4ss", Host: "h", Port: "3306", DBName: "d"}}
	s := cfg.Summary()
	assert.Equal(t, "u@h:3306/d", s["db"])
	for _, v := range s {
		assert.NotEqual(t, "p4ss", v)
	}
}

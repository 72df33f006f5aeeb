package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigYAML 内置默认配置
//
//go:embed default.yaml
var DefaultConfigYAML []byte

// devSessionSecret 未配置密钥时在非 release 模式下使用
const devSessionSecret = "projectledger-dev-secret"

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`

	// Warnings 加载过程中产生的提示，由调用方写入日志
	Warnings []string `mapstructure:"-"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// TrustedProxies 允许设置 X-Forwarded-For 的代理（IP 或 CIDR），为空时直接使用连接地址
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// DatabaseConfig 数据库配置，driver 为 sqlite 时只使用 Path
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Path         string `mapstructure:"path"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	LogLevel     string `mapstructure:"log_level"`
}

// SessionConfig 会话 Cookie 配置
type SessionConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
	CookieName  string        `mapstructure:"cookie_name"`
}

// AuthConfig 账号相关配置
type AuthConfig struct {
	BootstrapAdminUsername string        `mapstructure:"bootstrap_admin_username"`
	BootstrapAdminPassword string        `mapstructure:"bootstrap_admin_password"`
	AllowAdminRegistration bool          `mapstructure:"allow_admin_registration"`
	LoginRateLimit         int           `mapstructure:"login_rate_limit"`
	LoginRateWindow        time.Duration `mapstructure:"login_rate_window"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	Title    string `mapstructure:"title"`
	LogoPath string `mapstructure:"logo_path"`
	FontPath string `mapstructure:"font_path"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	var warnings []string

	// .env 只补充尚未设置的环境变量
	if err := godotenv.Load(); err == nil {
		warnings = append(warnings, "已加载 .env 文件")
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("无法读取指定配置文件 %s: %w", configPath, err)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/projectledger")
		externalViper.AddConfigPath("$HOME/.projectledger")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				warnings = append(warnings, fmt.Sprintf("合并外部配置失败: %v", err))
			} else {
				warnings = append(warnings, "已合并外部配置文件: "+externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 环境变量覆盖，如 PROJECTLEDGER_SESSION_SECRET
	v.SetEnvPrefix("PROJECTLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.Warnings = warnings

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Session.ExpireHours <= 0 {
		c.Session.ExpireHours = 24
	}
	c.Session.ExpireTime = time.Duration(c.Session.ExpireHours) * time.Hour
	if c.Session.CookieName == "" {
		c.Session.CookieName = "projectledger_session"
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Auth.LoginRateLimit <= 0 {
		c.Auth.LoginRateLimit = 10
	}
	if c.Auth.LoginRateWindow <= 0 {
		c.Auth.LoginRateWindow = time.Minute
	}
	if c.Export.Title == "" {
		c.Export.Title = "Expense report"
	}
	if c.Session.Secret == "" && !c.IsRelease() {
		c.Session.Secret = devSessionSecret
		c.Warnings = append(c.Warnings, "未配置 session.secret，使用开发用默认密钥，请勿用于生产环境")
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path 不能为空"))
		}
	case "mysql":
		if c.Database.Host == "" || c.Database.DBName == "" {
			errs = append(errs, errors.New("mysql 需要 database.host 和 database.dbname"))
		}
	default:
		errs = append(errs, fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("release 模式必须配置 session.secret（PROJECTLEDGER_SESSION_SECRET）"))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("未知的运行模式: %q", c.Server.Mode))
	}
	for _, p := range c.Server.TrustedProxies {
		if !validProxy(p) {
			errs = append(errs, fmt.Errorf("server.trusted_proxies 无效: %q", p))
		}
	}
	return errors.Join(errs...)
}

func validProxy(p string) bool {
	if strings.Contains(p, "/") {
		_, _, err := net.ParseCIDR(p)
		return err == nil
	}
	return net.ParseIP(p) != nil
}

// IsRelease 是否生产模式
func (c *Config) IsRelease() bool {
	return c != nil && c.Server.Mode == "release"
}

// Summary 当前配置摘要（隐藏敏感信息），用于启动日志
func (c *Config) Summary() map[string]any {
	db := c.Database.Path
	if c.Database.Driver == "mysql" {
		db = fmt.Sprintf("%s@%s:%s/%s", c.Database.Username, c.Database.Host, c.Database.Port, c.Database.DBName)
	}
	return map[string]any{
		"port":            c.Server.Port,
		"mode":            c.Server.Mode,
		"db_driver":       c.Database.Driver,
		"db":              db,
		"session_ttl":     c.Session.ExpireTime.String(),
		"admin_self_sign": c.Auth.AllowAdminRegistration,
		"export_logo":     c.Export.LogoPath != "",
	}
}

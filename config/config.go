package config

import (
	"bytes"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	// ProfileDevelopment 开发环境：gin debug 模式 + debug 日志
	ProfileDevelopment = "development"
	// ProfileProduction 生产环境：gin release 模式
	ProfileProduction = "production"
)

// Config 应用配置
type Config struct {
	Profile   string          `mapstructure:"profile"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Email     EmailConfig     `mapstructure:"email"`
	Report    ReportConfig    `mapstructure:"report"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	DBName       string        `mapstructure:"dbname"`
	Charset      string        `mapstructure:"charset"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	AutoMigrate  bool          `mapstructure:"auto_migrate"`
}

// LogConfig 日志配置，level 为空时按 profile 推断
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LedgerConfig 列表分页配置
type LedgerConfig struct {
	PageSize    int `mapstructure:"page_size"`
	RecentLimit int `mapstructure:"recent_limit"`
}

// RateLimitConfig 表单提交限流配置
type RateLimitConfig struct {
	WriteMax    int           `mapstructure:"write_max"`
	WriteWindow time.Duration `mapstructure:"write_window"`
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// ReportConfig 月度预算报告配置
type ReportConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Schedule   string   `mapstructure:"schedule"`
	Recipients []string `mapstructure:"recipients"`
}

// 兼容旧部署使用的环境变量名
var legacyEnv = map[string]string{
	"database.host":     "DB_HOST",
	"database.dbname":   "DB_NAME",
	"database.username": "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.port":     "DB_PORT",
	"profile":           "APP_PROFILE",
}

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
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
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", configPath, err)
		}
		log.Printf("已合并外部配置文件: %s", configPath)
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/budgetbook")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 环境变量覆盖：BUDGETBOOK_DATABASE_HOST 等，以及旧变量名 DB_HOST 等
	v.SetEnvPrefix("BUDGETBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("绑定环境变量 %s 失败: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.applyProfile()

	return &cfg, nil
}

// applyProfile 根据 profile 补全运行模式与日志级别
func (c *Config) applyProfile() {
	c.Profile = strings.ToLower(strings.TrimSpace(c.Profile))
	if c.Profile == "" {
		c.Profile = ProfileDevelopment
	}
	if c.Server.Mode == "" {
		if c.Debug() {
			c.Server.Mode = "debug"
		} else {
			c.Server.Mode = "release"
		}
	}
	if c.Log.Level == "" {
		if c.Debug() {
			c.Log.Level = "debug"
		} else {
			c.Log.Level = "info"
		}
	}
	if c.Server.Port != "" && !strings.HasPrefix(c.Server.Port, ":") && !strings.Contains(c.Server.Port, ":") {
		c.Server.Port = ":" + c.Server.Port
	}
}

// Debug 是否为开发环境
func (c *Config) Debug() bool {
	return c.Profile == ProfileDevelopment
}

// Validate 校验配置，一次性返回所有问题
func (c *Config) Validate() error {
	var errs []string

	if c.Profile != ProfileDevelopment && c.Profile != ProfileProduction {
		errs = append(errs, fmt.Sprintf("无效的 profile '%s'，可选值: %s, %s", c.Profile, ProfileDevelopment, ProfileProduction))
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Sprintf("无效的运行模式 '%s'，可选值: debug, release, test", c.Server.Mode))
	}

	if _, portStr, err := net.SplitHostPort(c.Server.Port); err != nil {
		errs = append(errs, fmt.Sprintf("无效的监听地址 '%s'", c.Server.Port))
	} else if port, err := strconv.Atoi(portStr); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("无效的端口 '%s'，必须在 1-65535 之间", portStr))
	}

	if c.Database.Host == "" {
		errs = append(errs, "数据库地址不能为空 (DB_HOST)")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "数据库名不能为空 (DB_NAME)")
	}
	if c.Database.Username == "" {
		errs = append(errs, "数据库用户名不能为空 (DB_USER)")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("无效的数据库端口 %d", c.Database.Port))
	}

	if c.Ledger.PageSize < 1 || c.Ledger.PageSize > 500 {
		errs = append(errs, fmt.Sprintf("无效的分页大小 %d，必须在 1-500 之间", c.Ledger.PageSize))
	}
	if c.Ledger.RecentLimit < 1 {
		errs = append(errs, fmt.Sprintf("无效的最近交易条数 %d", c.Ledger.RecentLimit))
	}

	if c.Report.Enabled {
		if _, err := cron.ParseStandard(c.Report.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("无效的报告计划 '%s': %v", c.Report.Schedule, err))
		}
		if len(c.Report.Recipients) == 0 {
			errs = append(errs, "启用报告时必须配置收件人 (report.recipients)")
		}
		if !c.Email.Enabled {
			errs = append(errs, "启用报告时必须同时启用邮件服务 (email.enabled)")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("配置校验失败:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// DSN 构建 MySQL 连接字符串
func (d DatabaseConfig) DSN() string {
	mc := mysql.NewConfig()
	mc.User = d.Username
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	mc.DBName = d.DBName
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Timeout = d.Timeout
	mc.ReadTimeout = d.ReadTimeout
	mc.WriteTimeout = d.WriteTimeout
	if d.Charset != "" {
		mc.Params = map[string]string{"charset": d.Charset}
	}
	return mc.FormatDSN()
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func (c *Config) PrintConfig() {
	log.Printf("当前配置:")
	log.Printf("  环境: %s (模式: %s, 日志: %s)", c.Profile, c.Server.Mode, c.Log.Level)
	log.Printf("  服务器: %s", c.Server.Port)
	log.Printf("  数据库: %s@%s:%d/%s",
		c.Database.Username,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName)
	log.Printf("  邮件服务: %v, 月度报告: %v", c.Email.Enabled, c.Report.Enabled)
}

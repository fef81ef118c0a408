package config

import (
	"fmt"
	"strings"

	"github.com/autodrop-platform/autodrop/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Queue      QueueConfig      `mapstructure:"queue"`
	Auth       AuthConfig       `mapstructure:"auth"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Checkout   CheckoutConfig   `mapstructure:"checkout"`
	Stripe     StripeConfig     `mapstructure:"stripe"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Twilio     TwilioConfig     `mapstructure:"twilio"`
	SendGrid   SendGridConfig   `mapstructure:"sendgrid"`
	AliExpress AliExpressConfig `mapstructure:"aliexpress"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// AuthConfig 身份配置；未携带令牌的请求回落到游客占位用户
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	GuestUsername string `mapstructure:"guest_username"`
}

// BotRateLimitConfig 机器人接口限流配置
type BotRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Bots BotRateLimitConfig `mapstructure:"bots"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// CheckoutConfig 结算配置
type CheckoutConfig struct {
	BaseURL  string `mapstructure:"base_url"` // 支付完成后的跳转域名
	Currency string `mapstructure:"currency"`
}

// StripeConfig Stripe 支付配置
type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	APIBaseURL    string `mapstructure:"api_base_url"`
}

// Configured 判断 Stripe 是否已配置
func (c StripeConfig) Configured() bool {
	return strings.TrimSpace(c.SecretKey) != ""
}

// OpenAIConfig 语言模型配置
type OpenAIConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	APIBaseURL string `mapstructure:"api_base_url"`
	TimeoutMS  int    `mapstructure:"timeout_ms"`
}

// Configured 判断语言模型是否已配置
func (c OpenAIConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// TwilioConfig 短信/电话服务配置
type TwilioConfig struct {
	AccountSID  string `mapstructure:"account_sid"`
	AuthToken   string `mapstructure:"auth_token"`
	PhoneNumber string `mapstructure:"phone_number"`
	APIBaseURL  string `mapstructure:"api_base_url"`
}

// Configured 判断 Twilio 是否已配置
func (c TwilioConfig) Configured() bool {
	return strings.TrimSpace(c.AccountSID) != "" &&
		strings.TrimSpace(c.AuthToken) != "" &&
		strings.TrimSpace(c.PhoneNumber) != ""
}

// SendGridConfig 事务邮件配置
type SendGridConfig struct {
	APIKey     string `mapstructure:"api_key"`
	FromEmail  string `mapstructure:"from_email"`
	APIBaseURL string `mapstructure:"api_base_url"`
}

// Configured 判断 SendGrid 是否已配置；API Key 必须以 SG. 开头
func (c SendGridConfig) Configured() bool {
	return strings.HasPrefix(strings.TrimSpace(c.APIKey), "SG.")
}

// AliExpressConfig 货源市场配置
type AliExpressConfig struct {
	AppKey    string `mapstructure:"app_key"`
	AppSecret string `mapstructure:"app_secret"`
}

// Configured 判断货源市场凭证是否已配置
func (c AliExpressConfig) Configured() bool {
	return strings.TrimSpace(c.AppKey) != "" && strings.TrimSpace(c.AppSecret) != ""
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "5000")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "autodrop.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/autodrop.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "ad")
	viper.SetDefault("queue.enabled", false)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 10)
	viper.SetDefault("queue.queues", map[string]int{
		"default": 10,
	})
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.guest_username", "guest")
	viper.SetDefault("rate_limit.bots.window_seconds", 60)
	viper.SetDefault("rate_limit.bots.max_requests", 20)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)
	viper.SetDefault("checkout.base_url", "http://localhost:5000")
	viper.SetDefault("checkout.currency", "USD")
	viper.SetDefault("stripe.secret_key", "")
	viper.SetDefault("stripe.webhook_secret", "")
	viper.SetDefault("stripe.api_base_url", "")
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.model", "gpt-4o")
	viper.SetDefault("openai.api_base_url", "")
	viper.SetDefault("openai.timeout_ms", 30000)
	viper.SetDefault("twilio.account_sid", "")
	viper.SetDefault("twilio.auth_token", "")
	viper.SetDefault("twilio.phone_number", "")
	viper.SetDefault("twilio.api_base_url", "")
	viper.SetDefault("sendgrid.api_key", "")
	viper.SetDefault("sendgrid.from_email", "support@autodropplatform.shop")
	viper.SetDefault("sendgrid.api_base_url", "")
	viper.SetDefault("aliexpress.app_key", "")
	viper.SetDefault("aliexpress.app_secret", "")

	// 环境变量支持（server.port -> SERVER_PORT）
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}

	return &cfg
}

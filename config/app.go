package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig is the typed view over the environment used by the server.
type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	LogFormat      string
	AcceptedOrigin []string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Mongo    MongoConfig
	SMTP     SMTPConfig
	Limiter  LimiterConfig
	AppStore AppStoreConfig

	MetricsEnabled bool
}

type MongoConfig struct {
	URI            string
	Database       string
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
	QueryTimeout   time.Duration

	// Direct rewrites mongodb+srv URIs to a single-host form so local runs skip SRV lookups.
	Direct bool
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
	Timeout  time.Duration
}

type LimiterConfig struct {
	Store    string
	RedisURL string
	Prefix   string
	Sweep    string
}

type AppStoreConfig struct {
	LookupURL string
	Country   string
	Timeout   time.Duration
	CacheMB   int
	CacheTTL  time.Duration
}

// IsDevelopment reports whether the service runs on a developer machine.
func (c AppConfig) IsDevelopment() bool {
	switch strings.ToLower(c.Env) {
	case "development", "dev", "local":
		return true
	}
	return false
}

// Load reads every setting the server needs, applying defaults.
func Load(c *viper.Viper) AppConfig {
	env := GetString(c, "APP_ENV", "production")
	smtpUser := GetString(c, "SMTP_USER", "")

	cfg := AppConfig{
		Port:           GetString(c, "PORT", "8080"),
		Env:            env,
		LogLevel:       GetString(c, "LOG_LEVEL", "info"),
		LogFormat:      GetString(c, "LOG_FORMAT", "json"),
		AcceptedOrigin: GetList(c, "ACCEPTED_ORIGINS", AllowedOrigins),

		ReadTimeout:  time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 30)) * time.Second,
		WriteTimeout: time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		IdleTimeout:  time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second,

		Mongo: MongoConfig{
			URI:            GetString(c, "MONGODB_URI", ""),
			Database:       GetString(c, "MONGODB_DATABASE", DatabaseName),
			MaxPoolSize:    uint64(GetInt(c, "MONGODB_MAX_POOL_SIZE", 10)),
			ConnectTimeout: GetDuration(c, "DB_CONNECT_TIMEOUT", 5*time.Second),
			PingTimeout:    GetDuration(c, "DB_PING_TIMEOUT", 2*time.Second),
			QueryTimeout:   GetDuration(c, "DB_QUERY_TIMEOUT", 5*time.Second),
		},

		SMTP: SMTPConfig{
			Host:     GetString(c, "SMTP_HOST", "smtp.gmail.com"),
			Port:     GetInt(c, "SMTP_PORT", 587),
			User:     smtpUser,
			Password: GetString(c, "SMTP_PASS", ""),
			From:     GetString(c, "SMTP_FROM", smtpUser),
			To:       GetString(c, "CONTACT_TO", ContactRecipient),
			Timeout:  GetDuration(c, "SMTP_TIMEOUT", 15*time.Second),
		},

		Limiter: LimiterConfig{
			Store:    strings.ToLower(GetString(c, "RATE_LIMIT_STORE", "memory")),
			RedisURL: GetString(c, "REDIS_URL", ""),
			Prefix:   GetString(c, "RATE_LIMIT_PREFIX", "rl"),
			Sweep:    GetString(c, "RATE_LIMIT_SWEEP", "@every 1m"),
		},

		AppStore: AppStoreConfig{
			LookupURL: GetString(c, "APPSTORE_LOOKUP_URL", "https://itunes.apple.com/lookup"),
			Country:   GetString(c, "APPSTORE_COUNTRY", "us"),
			Timeout:   GetDuration(c, "APPSTORE_TIMEOUT", 10*time.Second),
			CacheMB:   GetInt(c, "APPSTORE_CACHE_MB", 32),
			CacheTTL:  GetDuration(c, "APPSTORE_CACHE_TTL", time.Hour),
		},

		MetricsEnabled: GetBool(c, "METRICS_ENABLED", true),
	}

	cfg.Mongo.Direct = GetBool(c, "MONGODB_DIRECT", cfg.IsDevelopment())
	return cfg
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// MongoConfig holds MongoDB connection settings.
// URI wins over the discrete host/port/user fields when set.
type MongoConfig struct {
	URI                string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	AuthSource         string
	MaxPoolSize        int
	MinPoolSize        int
	ConnMaxIdleTimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// EmailConfig selects and configures the transactional email provider.
type EmailConfig struct {
	Provider     string // resend, ses or noop
	From         string
	ResendAPIKey string
	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
}

// NotifyConfig controls how welcome emails are dispatched after a subscription commits.
type NotifyConfig struct {
	Mode        string // async or inline
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
}

// RedisConfig enables cross-instance subscriber locks when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	LockTTL  time.Duration
}

// AdminConfig holds the shared admin credential and session settings.
type AdminConfig struct {
	PasswordHash string
	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost          string
	Port             string
	Timezone         string
	LogLevel         string
	SiteURL          string
	BrandName        string
	CORSAllowOrigins string
	Mongo            MongoConfig
	MinIO            MinIOConfig
	Email            EmailConfig
	Notify           NotifyConfig
	Redis            RedisConfig
	Admin            AdminConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:          getEnv("APP_HOST", "localhost:8080"),
		Port:             getEnv("PORT", "8080"),
		Timezone:         getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SiteURL:          strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		BrandName:        getEnv("BRAND_NAME", "Maison"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		Mongo: MongoConfig{
			URI:                getEnv("MONGO_URI", ""),
			Host:               getEnv("MONGO_HOST", ""),
			Port:               getEnv("MONGO_PORT", "27017"),
			User:               getEnv("MONGO_USER", ""),
			Password:           getEnv("MONGO_PASSWORD", ""),
			Name:               getEnv("MONGO_DB", "prelaunch"),
			AuthSource:         getEnv("MONGO_AUTH_SOURCE", ""),
			MaxPoolSize:        getEnvInt("MONGO_MAX_POOL_SIZE", 20),
			MinPoolSize:        getEnvInt("MONGO_MIN_POOL_SIZE", 0),
			ConnMaxIdleTimeSec: getEnvInt("MONGO_CONN_MAX_IDLE_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", ""),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: strings.TrimRight(getEnv("MINIO_PUBLIC_BASE_URL", ""), "/"),
		},
		Email: EmailConfig{
			Provider:     strings.ToLower(getEnv("EMAIL_PROVIDER", "")),
			From:         getEnv("EMAIL_FROM", "Maison <hello@example.com>"),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
			AWSAccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
			AWSSecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Notify: NotifyConfig{
			Mode:        strings.ToLower(getEnv("NOTIFY_MODE", "async")),
			QueueSize:   getEnvInt("NOTIFY_QUEUE_SIZE", 256),
			Workers:     getEnvInt("NOTIFY_WORKERS", 2),
			SendTimeout: getEnvDuration("NOTIFY_SEND_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			LockTTL:  getEnvDuration("LOCK_TTL", 5*time.Second),
		},
		Admin: AdminConfig{
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("ADMIN_JWT_SECRET", ""),
			SessionTTL:   getEnvDuration("ADMIN_SESSION_TTL", 24*time.Hour),
			CookieSecure: getEnvBool("COOKIE_SECURE", true),
		},
	}
}

// EmailProvider resolves the provider name, falling back to whichever credentials are present.
func (c EmailConfig) EmailProvider() string {
	if c.Provider != "" {
		return c.Provider
	}
	if c.ResendAPIKey != "" {
		return "resend"
	}
	return "noop"
}

// Location returns the configured timezone, or UTC if it cannot be loaded.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Daftra    DaftraConfig
	Magicplan MagicplanConfig
	Storage   StorageConfig
	Archive   ArchiveConfig
	Sync      SyncConfig
	Email     EmailConfig
	Log       LogConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// DaftraConfig holds billing source API settings.
type DaftraConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	PageSize    int           `mapstructure:"page_size"`
}

// MagicplanConfig holds floor-plan gallery API settings.
type MagicplanConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds local document storage settings.
type StorageConfig struct {
	Root string `mapstructure:"root"`
}

// ArchiveConfig holds optional S3 mirror settings for saved documents.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// SyncConfig holds sync pipeline pacing settings.
type SyncConfig struct {
	PauseBetween time.Duration `mapstructure:"pause_between"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider      string `mapstructure:"provider"`
	Region        string `mapstructure:"region"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	NotifyAddress string `mapstructure:"notify_address"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the ALAZAB_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ALAZAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "alazab")
	v.SetDefault("db.password", "alazab_secret")
	v.SetDefault("db.name", "alazab_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "12h")
	v.SetDefault("jwt.issuer", "alazab")

	// Daftra defaults
	v.SetDefault("daftra.base_url", "https://alazab.daftra.com/api/v2")
	v.SetDefault("daftra.api_key", "")
	v.SetDefault("daftra.access_token", "")
	v.SetDefault("daftra.timeout", "30s")
	v.SetDefault("daftra.page_size", 50)

	// Magicplan defaults
	v.SetDefault("magicplan.base_url", "https://api.magicplan.app/v2")
	v.SetDefault("magicplan.api_key", "")
	v.SetDefault("magicplan.timeout", "30s")

	// Storage defaults
	v.SetDefault("storage.root", "/mnt/alazab-storage")

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "alazab-invoice-archive")
	v.SetDefault("archive.endpoint", "")

	// Sync defaults
	v.SetDefault("sync.pause_between", "1s")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "me-south-1")
	v.SetDefault("email.from_address", "noreply@alazab.com")
	v.SetDefault("email.from_name", "Alazab Invoices")
	v.SetDefault("email.notify_address", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "ALAZAB_SERVER_PORT",
		"server.read_timeout":  "ALAZAB_SERVER_READ_TIMEOUT",
		"server.write_timeout": "ALAZAB_SERVER_WRITE_TIMEOUT",
		"server.environment":   "ALAZAB_SERVER_ENVIRONMENT",
		"db.host":              "ALAZAB_DB_HOST",
		"db.port":              "ALAZAB_DB_PORT",
		"db.user":              "ALAZAB_DB_USER",
		"db.password":          "ALAZAB_DB_PASSWORD",
		"db.name":              "ALAZAB_DB_NAME",
		"db.sslmode":           "ALAZAB_DB_SSLMODE",
		"db.max_open":          "ALAZAB_DB_MAX_OPEN",
		"db.max_idle":          "ALAZAB_DB_MAX_IDLE",
		"jwt.secret":           "ALAZAB_JWT_SECRET",
		"jwt.access_expiry":    "ALAZAB_JWT_ACCESS_EXPIRY",
		"jwt.issuer":           "ALAZAB_JWT_ISSUER",
		"daftra.base_url":      "ALAZAB_DAFTRA_BASE_URL",
		"daftra.api_key":       "ALAZAB_DAFTRA_API_KEY",
		"daftra.access_token":  "ALAZAB_DAFTRA_ACCESS_TOKEN",
		"daftra.timeout":       "ALAZAB_DAFTRA_TIMEOUT",
		"daftra.page_size":     "ALAZAB_DAFTRA_PAGE_SIZE",
		"magicplan.base_url":   "ALAZAB_MAGICPLAN_BASE_URL",
		"magicplan.api_key":    "ALAZAB_MAGICPLAN_API_KEY",
		"magicplan.timeout":    "ALAZAB_MAGICPLAN_TIMEOUT",
		"storage.root":         "ALAZAB_STORAGE_ROOT",
		"archive.enabled":      "ALAZAB_ARCHIVE_ENABLED",
		"archive.region":       "ALAZAB_ARCHIVE_REGION",
		"archive.bucket":       "ALAZAB_ARCHIVE_BUCKET",
		"archive.endpoint":     "ALAZAB_ARCHIVE_ENDPOINT",
		"archive.access_key":   "ALAZAB_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":   "ALAZAB_ARCHIVE_SECRET_KEY",
		"sync.pause_between":   "ALAZAB_SYNC_PAUSE_BETWEEN",
		"email.provider":       "ALAZAB_EMAIL_PROVIDER",
		"email.region":         "ALAZAB_EMAIL_REGION",
		"email.from_address":   "ALAZAB_EMAIL_FROM_ADDRESS",
		"email.from_name":      "ALAZAB_EMAIL_FROM_NAME",
		"email.notify_address": "ALAZAB_EMAIL_NOTIFY_ADDRESS",
		"log.level":            "ALAZAB_LOG_LEVEL",
		"log.format":           "ALAZAB_LOG_FORMAT",
		"cors.allowed_origins": "ALAZAB_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ALAZAB_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ALAZAB_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Daftra = DaftraConfig{
		BaseURL:     v.GetString("daftra.base_url"),
		APIKey:      v.GetString("daftra.api_key"),
		AccessToken: v.GetString("daftra.access_token"),
		Timeout:     v.GetDuration("daftra.timeout"),
		PageSize:    v.GetInt("daftra.page_size"),
	}
	cfg.Magicplan = MagicplanConfig{
		BaseURL: v.GetString("magicplan.base_url"),
		APIKey:  v.GetString("magicplan.api_key"),
		Timeout: v.GetDuration("magicplan.timeout"),
	}
	cfg.Storage = StorageConfig{
		Root: v.GetString("storage.root"),
	}
	cfg.Archive = ArchiveConfig{
		Enabled:   v.GetBool("archive.enabled"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}
	cfg.Sync = SyncConfig{
		PauseBetween: v.GetDuration("sync.pause_between"),
	}
	cfg.Email = EmailConfig{
		Provider:      v.GetString("email.provider"),
		Region:        v.GetString("email.region"),
		FromAddress:   v.GetString("email.from_address"),
		FromName:      v.GetString("email.from_name"),
		NotifyAddress: v.GetString("email.notify_address"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}

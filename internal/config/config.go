package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Settings SettingsConfig
	Scanner  ScannerConfig
	Telegram TelegramConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// AuthConfig holds the single administrator account
type AuthConfig struct {
	AdminUsername       string
	AdminPassphraseHash string
}

// StorageConfig selects the ledger backend and where uploads are written
type StorageConfig struct {
	Driver    string
	FilesPath string
	Seed      bool
}

type SettingsConfig struct {
	SQLitePath string
}

type ScannerConfig struct {
	RecentScanLimit int
}

type TelegramConfig struct {
	Token  string
	ChatID int64
	Debug  bool
}

type CronConfig struct {
	Enabled     bool
	AbsenceSpec string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "gestipresence"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "gestipresence"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Europe/Paris"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	config.Auth = AuthConfig{
		AdminUsername:       getEnv("ADMIN_USERNAME", "admin"),
		AdminPassphraseHash: getEnv("ADMIN_PASSPHRASE_HASH", ""),
	}

	seed, err := strconv.ParseBool(getEnv("STORAGE_SEED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_SEED: %w", err)
	}
	config.Storage = StorageConfig{
		Driver:    getEnv("STORAGE_DRIVER", StorageDriverMemory),
		FilesPath: getEnv("STORAGE_FILES_PATH", "./uploads"),
		Seed:      seed,
	}

	config.Settings = SettingsConfig{
		SQLitePath: getEnv("SETTINGS_SQLITE_PATH", "./settings.db"),
	}

	recentLimit, err := strconv.Atoi(getEnv("SCANNER_RECENT_LIMIT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCANNER_RECENT_LIMIT: %w", err)
	}
	config.Scanner = ScannerConfig{RecentScanLimit: recentLimit}

	// Telegram notifications are optional
	var chatID int64
	if raw := getEnv("TELEGRAM_CHAT_ID", ""); raw != "" {
		chatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}
	tgDebug, err := strconv.ParseBool(getEnv("TELEGRAM_DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_DEBUG: %w", err)
	}
	config.Telegram = TelegramConfig{
		Token:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		ChatID: chatID,
		Debug:  tgDebug,
	}

	cronEnabled, err := strconv.ParseBool(getEnv("CRON_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_ENABLED: %w", err)
	}
	config.Cron = CronConfig{
		Enabled:     cronEnabled,
		AbsenceSpec: getEnv("CRON_ABSENCE_SPEC", "5 0 * * *"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err)
	}
	if c.Auth.AdminPassphraseHash == "" {
		return fmt.Errorf("ADMIN_PASSPHRASE_HASH is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE is invalid: %w", err)
	}

	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverMemory, StorageDriverPostgres)
	}

	if c.Scanner.RecentScanLimit < 1 || c.Scanner.RecentScanLimit > 50 {
		return fmt.Errorf("SCANNER_RECENT_LIMIT must be between 1 and 50")
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the facility timezone used to stamp scans.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

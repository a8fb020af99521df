package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	SMTP     SMTPConfig
	Policy   PolicyConfig
}

type DatabaseConfig struct {
	Driver   string // postgres or memory
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// SMTPConfig holds outgoing mail settings; an empty Host disables sending.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// PolicyConfig holds the attendance, roster and leave margins
type PolicyConfig struct {
	LateMargin         time.Duration
	EarlyArrivalMargin time.Duration
	ClockOutGrace      time.Duration
	EarlyExitGrace     time.Duration
	WeeklyShiftLimit   int
	AnnualNoticeDays   int
	AnnualMaxDays      int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", "postgres"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_shift"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@localhost"),
		FromName: getEnv("SMTP_FROM_NAME", "HRIS Shift"),
	}

	// Policy configuration
	if config.Policy, err = loadPolicy(); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPolicy() (PolicyConfig, error) {
	var (
		p   PolicyConfig
		err error
	)
	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"POLICY_LATE_MARGIN", "15m", &p.LateMargin},
		{"POLICY_EARLY_ARRIVAL_MARGIN", "30m", &p.EarlyArrivalMargin},
		{"POLICY_CLOCK_OUT_GRACE", "60m", &p.ClockOutGrace},
		{"POLICY_EARLY_EXIT_GRACE", "15m", &p.EarlyExitGrace},
	}
	for _, d := range durations {
		if *d.dst, err = time.ParseDuration(getEnv(d.key, d.fallback)); err != nil {
			return PolicyConfig{}, fmt.Errorf("invalid %s: %w", d.key, err)
		}
	}

	ints := []struct {
		key      string
		fallback string
		dst      *int
	}{
		{"POLICY_WEEKLY_SHIFT_LIMIT", "6", &p.WeeklyShiftLimit},
		{"POLICY_ANNUAL_NOTICE_DAYS", "7", &p.AnnualNoticeDays},
		{"POLICY_ANNUAL_MAX_DAYS", "5", &p.AnnualMaxDays},
	}
	for _, i := range ints {
		if *i.dst, err = strconv.Atoi(getEnv(i.key, i.fallback)); err != nil {
			return PolicyConfig{}, fmt.Errorf("invalid %s: %w", i.key, err)
		}
	}
	return p, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case "memory":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or memory")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Policy.WeeklyShiftLimit < 1 {
		return fmt.Errorf("POLICY_WEEKLY_SHIFT_LIMIT must be positive")
	}
	if c.Policy.AnnualMaxDays < 1 {
		return fmt.Errorf("POLICY_ANNUAL_MAX_DAYS must be positive")
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

// Location resolves the configured timezone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

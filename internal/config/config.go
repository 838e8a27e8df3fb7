package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	WorkHours WorkHoursConfig `yaml:"work_hours"`
	Live      LiveConfig      `yaml:"live"`
	Geocode   GeocodeConfig   `yaml:"geocode"`
	CORS      CORSConfig      `yaml:"cors"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string `yaml:"name"`
	Port     int    `yaml:"port"`
	Env      string `yaml:"env"`
	Timezone string `yaml:"timezone"`
	SeedDemo bool   `yaml:"seed_demo"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int32  `yaml:"max_conns"`
	MinConns int32  `yaml:"min_conns"`
}

// StorageConfig selects where entries, balances and the directory live
type StorageConfig struct {
	Driver string `yaml:"driver"` // postgres | memory
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string `yaml:"secret"`
	AccessExpiration string `yaml:"access_expiration"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// WorkHoursConfig is served until an administrator saves other settings
type WorkHoursConfig struct {
	DailyHours           float64  `yaml:"daily_hours"`
	LunchDurationMinutes int      `yaml:"lunch_duration_minutes"`
	WeeklyHours          float64  `yaml:"weekly_hours"`
	WorkingDays          []string `yaml:"working_days"`
	StartTime            string   `yaml:"start_time"`
	LunchStart           string   `yaml:"lunch_start"`
	LunchEnd             string   `yaml:"lunch_end"`
	EndTime              string   `yaml:"end_time"`
}

type LiveConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

type GeocodeConfig struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:     "ponto-backend",
			Port:     8080,
			Env:      "development",
			Timezone: "America/Sao_Paulo",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Name:     "ponto",
			SSLMode:  "disable",
			MaxConns: 25,
			MinConns: 5,
		},
		Storage: StorageConfig{Driver: "postgres"},
		JWT:     JWTConfig{AccessExpiration: "12h"},
		Log: LogConfig{
			Level:      "info",
			Console:    true,
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
		WorkHours: WorkHoursConfig{
			DailyHours:           8,
			LunchDurationMinutes: 60,
			WeeklyHours:          40,
			WorkingDays:          []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			StartTime:            "08:00",
			LunchStart:           "12:00",
			LunchEnd:             "13:00",
			EndTime:              "17:00",
		},
		Live: LiveConfig{RefreshInterval: time.Second},
		Geocode: GeocodeConfig{
			BaseURL:   "https://nominatim.openstreetmap.org",
			UserAgent: "TempPreco-TimeTracking/1.0",
			Timeout:   5 * time.Second,
		},
		CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_FILE, an optional .env file and the environment, in that order.
func Load() (*Config, error) {
	// .env is optional; real deployments pass plain environment variables
	_ = godotenv.Load()

	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) applyEnv() error {
	var err error

	// Application configuration
	c.App.Name = getEnv("APP_NAME", c.App.Name)
	if c.App.Port, err = getEnvInt("APP_PORT", c.App.Port); err != nil {
		return err
	}
	c.App.Env = getEnv("APP_ENV", c.App.Env)
	c.App.Timezone = getEnv("APP_TIMEZONE", c.App.Timezone)
	if c.App.SeedDemo, err = getEnvBool("APP_SEED_DEMO", c.App.SeedDemo); err != nil {
		return err
	}

	// Database configuration
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	if c.Database.Port, err = getEnvInt("DB_PORT", c.Database.Port); err != nil {
		return err
	}
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSL_MODE", c.Database.SSLMode)
	maxConns, err := getEnvInt("DB_MAX_CONNS", int(c.Database.MaxConns))
	if err != nil {
		return err
	}
	c.Database.MaxConns = int32(maxConns)
	minConns, err := getEnvInt("DB_MIN_CONNS", int(c.Database.MinConns))
	if err != nil {
		return err
	}
	c.Database.MinConns = int32(minConns)

	c.Storage.Driver = getEnv("STORAGE_DRIVER", c.Storage.Driver)

	// JWT configuration
	c.JWT.Secret = getEnv("JWT_SECRET_KEY", c.JWT.Secret)
	c.JWT.AccessExpiration = getEnv("JWT_ACCESS_EXPIRATION_TIME", c.JWT.AccessExpiration)

	// Log configuration
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)
	if c.Log.Console, err = getEnvBool("LOG_CONSOLE", c.Log.Console); err != nil {
		return err
	}

	// Work hours defaults
	if v := os.Getenv("WORK_DAILY_HOURS"); v != "" {
		daily, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid WORK_DAILY_HOURS: %w", err)
		}
		c.WorkHours.DailyHours = daily
	}
	if v := os.Getenv("WORK_WEEKLY_HOURS"); v != "" {
		weekly, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid WORK_WEEKLY_HOURS: %w", err)
		}
		c.WorkHours.WeeklyHours = weekly
	}
	if c.WorkHours.LunchDurationMinutes, err = getEnvInt("WORK_LUNCH_DURATION_MINUTES", c.WorkHours.LunchDurationMinutes); err != nil {
		return err
	}
	if days := getEnvSlice("WORK_WORKING_DAYS"); len(days) > 0 {
		c.WorkHours.WorkingDays = days
	}
	c.WorkHours.StartTime = getEnv("WORK_START_TIME", c.WorkHours.StartTime)
	c.WorkHours.LunchStart = getEnv("WORK_LUNCH_START", c.WorkHours.LunchStart)
	c.WorkHours.LunchEnd = getEnv("WORK_LUNCH_END", c.WorkHours.LunchEnd)
	c.WorkHours.EndTime = getEnv("WORK_END_TIME", c.WorkHours.EndTime)

	if v := os.Getenv("LIVE_REFRESH_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LIVE_REFRESH_INTERVAL: %w", err)
		}
		c.Live.RefreshInterval = interval
	}

	c.Geocode.BaseURL = getEnv("GEOCODE_BASE_URL", c.Geocode.BaseURL)
	c.Geocode.UserAgent = getEnv("GEOCODE_USER_AGENT", c.Geocode.UserAgent)
	if v := os.Getenv("GEOCODE_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid GEOCODE_TIMEOUT: %w", err)
		}
		c.Geocode.Timeout = timeout
	}

	if origins := getEnvSlice("CORS_ALLOWED_ORIGINS"); len(origins) > 0 {
		c.CORS.AllowedOrigins = origins
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err)
	}
	switch c.Storage.Driver {
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER: %s", c.Storage.Driver)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE is invalid: %w", err)
	}
	if c.WorkHours.DailyHours <= 0 || c.WorkHours.DailyHours > 24 {
		return fmt.Errorf("WORK_DAILY_HOURS must be greater than 0 and at most 24")
	}
	if c.Live.RefreshInterval <= 0 {
		return fmt.Errorf("LIVE_REFRESH_INTERVAL must be positive")
	}
	return nil
}

// Location returns the timezone calendar days are computed in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
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

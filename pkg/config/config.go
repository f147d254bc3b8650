package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string `validate:"oneof=development production test"`
	Port      int    `validate:"min=1,max=65535"`
	APIPrefix string

	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Timp     TimpConfig
	Schedule ScheduleConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string `validate:"omitempty,oneof=json console"`
}

// TimpConfig describes how to reach the TIMP public API.
type TimpConfig struct {
	BaseURL        string        `validate:"required,url"`
	APIKey         string
	CenterUUID     string
	Timeout        time.Duration `validate:"gt=0"`
	MaxConcurrency int           `validate:"min=1,max=32"`
	RateLimit      float64       `validate:"gte=0"`
	RateBurst      int           `validate:"min=1"`
}

// ScheduleConfig tunes the weekly schedule view.
type ScheduleConfig struct {
	Timezone          string `validate:"required"`
	Locale            string `validate:"oneof=es en"`
	BookingURL        string `validate:"omitempty,url"`
	LowSeatsThreshold int    `validate:"min=0"`
	CacheEnabled      bool
	CacheTTL          time.Duration
	MaxWeekOffset     int `validate:"min=0"`
}

// Location resolves the configured schedule time zone.
func (c ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Timp = TimpConfig{
		BaseURL:        strings.TrimRight(v.GetString("TIMP_API_BASE_URL"), "/"),
		APIKey:         strings.TrimSpace(v.GetString("TIMP_API_KEY")),
		CenterUUID:     strings.TrimSpace(v.GetString("TIMP_CENTER_UUID")),
		Timeout:        parseDuration(v.GetString("TIMP_TIMEOUT"), 15*time.Second),
		MaxConcurrency: v.GetInt("TIMP_MAX_CONCURRENCY"),
		RateLimit:      v.GetFloat64("TIMP_RATE_LIMIT"),
		RateBurst:      v.GetInt("TIMP_RATE_BURST"),
	}

	cfg.Schedule = ScheduleConfig{
		Timezone:          v.GetString("SCHEDULE_TIMEZONE"),
		Locale:            strings.ToLower(v.GetString("SCHEDULE_LOCALE")),
		BookingURL:        v.GetString("SCHEDULE_BOOKING_URL"),
		LowSeatsThreshold: v.GetInt("SCHEDULE_LOW_SEATS_THRESHOLD"),
		CacheEnabled:      v.GetBool("ENABLE_SCHEDULE_CACHE"),
		CacheTTL:          parseDuration(v.GetString("SCHEDULE_CACHE_TTL"), 5*time.Minute),
		MaxWeekOffset:     v.GetInt("SCHEDULE_MAX_WEEK_OFFSET"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks struct constraints and that the schedule time zone exists.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TIMP_API_BASE_URL", "https://api.timp.pro/api/timp/v1")
	v.SetDefault("TIMP_API_KEY", "")
	v.SetDefault("TIMP_CENTER_UUID", "")
	v.SetDefault("TIMP_TIMEOUT", "15s")
	v.SetDefault("TIMP_MAX_CONCURRENCY", 4)
	v.SetDefault("TIMP_RATE_LIMIT", 10)
	v.SetDefault("TIMP_RATE_BURST", 5)

	v.SetDefault("SCHEDULE_TIMEZONE", "Europe/Madrid")
	v.SetDefault("SCHEDULE_LOCALE", "es")
	v.SetDefault("SCHEDULE_BOOKING_URL", "")
	v.SetDefault("SCHEDULE_LOW_SEATS_THRESHOLD", 3)
	v.SetDefault("ENABLE_SCHEDULE_CACHE", false)
	v.SetDefault("SCHEDULE_CACHE_TTL", "5m")
	v.SetDefault("SCHEDULE_MAX_WEEK_OFFSET", 52)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

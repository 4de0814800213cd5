package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Booking  BookingConfig
	Cart     CartConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	DraftTTLMinutes int
}

type SessionConfig struct {
	ExpiryHours int
}

// BookingConfig defines the bookable window: slots start on the hour or half
// hour from OpenHour up to and including CloseHour. The timezone is explicit
// so slot generation does not depend on server local time.
type BookingConfig struct {
	OpenHour             int
	CloseHour            int
	SlotMinutes          int
	Timezone             string
	SubmitTimeoutSeconds int
}

type CartConfig struct {
	PromoCode    string
	PromoPercent int
}

// DraftTTL is how long an untouched booking draft survives in redis.
func (c *Config) DraftTTL() time.Duration {
	return time.Duration(c.Redis.DraftTTLMinutes) * time.Minute
}

// SubmitTimeout bounds a single booking submission attempt.
func (c *Config) SubmitTimeout() time.Duration {
	return time.Duration(c.Booking.SubmitTimeoutSeconds) * time.Second
}

// BookingLocation resolves the configured timezone, falling back to UTC.
func (c *Config) BookingLocation() *time.Location {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DRAFT_TTL_MINUTES", 30)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("BOOKING_OPEN_HOUR", 9)
	viper.SetDefault("BOOKING_CLOSE_HOUR", 18)
	viper.SetDefault("BOOKING_SLOT_MINUTES", 30)
	viper.SetDefault("BOOKING_TIMEZONE", "Europe/Moscow")
	viper.SetDefault("BOOKING_SUBMIT_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CART_PROMO_CODE", "CLEAN10")
	viper.SetDefault("CART_PROMO_PERCENT", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:            viper.GetString("REDIS_ADDR"),
			Password:        viper.GetString("REDIS_PASS"),
			DB:              viper.GetInt("REDIS_DB"),
			DraftTTLMinutes: viper.GetInt("DRAFT_TTL_MINUTES"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			OpenHour:             viper.GetInt("BOOKING_OPEN_HOUR"),
			CloseHour:            viper.GetInt("BOOKING_CLOSE_HOUR"),
			SlotMinutes:          viper.GetInt("BOOKING_SLOT_MINUTES"),
			Timezone:             viper.GetString("BOOKING_TIMEZONE"),
			SubmitTimeoutSeconds: viper.GetInt("BOOKING_SUBMIT_TIMEOUT_SECONDS"),
		},
		Cart: CartConfig{
			PromoCode:    viper.GetString("CART_PROMO_CODE"),
			PromoPercent: viper.GetInt("CART_PROMO_PERCENT"),
		},
	}

	return config, nil
}

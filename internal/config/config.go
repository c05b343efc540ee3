// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Database holds the Postgres connection settings.
type Database struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

// Config is the full engine configuration, read from the environment.
// A .env file is loaded by main before this runs.
type Config struct {
	HTTPPort string
	LogLevel string

	DB Database

	// AMQPURL is the delivery-report audit queue. Empty disables publishing.
	AMQPURL string

	// GatewayURL points at the external SMS gateway. Empty selects the
	// stdout gateway for local runs.
	GatewayURL    string
	GatewayAPIKey string

	DispatchConcurrency int
	SendTimeout         time.Duration

	// Timezone is the IANA location the campaign scheduler evaluates
	// calendar dates in.
	Timezone string
	// HolidaySendHour is the local hour-of-day at/after which the holiday
	// campaign may fire.
	HolidaySendHour int
}

func Load() Config {
	return Config{
		HTTPPort: getenv("PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		DB: Database{
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", ""),
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			Name:     getenv("DB_NAME", "swapsync"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		AMQPURL:             os.Getenv("AMQP_URL"),
		GatewayURL:          os.Getenv("SMS_GATEWAY_URL"),
		GatewayAPIKey:       os.Getenv("SMS_GATEWAY_API_KEY"),
		DispatchConcurrency: getenvInt("DISPATCH_CONCURRENCY", 8),
		SendTimeout:         getenvDuration("SEND_TIMEOUT", 10*time.Second),
		Timezone:            getenv("TZ_LOCATION", "Africa/Nairobi"),
		HolidaySendHour:     getenvInt("HOLIDAY_SEND_HOUR", 9),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

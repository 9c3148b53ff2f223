package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the service reads from the environment. The
// database credentials are provisioned externally (secret store / task
// definition); only the key names are fixed here.
type Config struct {
	Env      string
	HTTPAddr string

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBOptions  string

	RedisAddr string

	RateLimitPerSecond float64
	RateLimitBurst     int
	BanStrikeLimit     int
	BanDuration        time.Duration
}

// Load reads configuration from environment variables, falling back to
// local-development defaults.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "visynet")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_OPTIONS", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("RATE_LIMIT_PER_SECOND", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("BAN_STRIKE_LIMIT", 10)
	v.SetDefault("BAN_DURATION", time.Hour)

	return Config{
		Env:      v.GetString("APP_ENV"),
		HTTPAddr: v.GetString("HTTP_ADDR"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetInt("DB_PORT"),
		DBName:     v.GetString("DB_NAME"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBOptions:  v.GetString("DB_OPTIONS"),

		RedisAddr: v.GetString("REDIS_ADDR"),

		RateLimitPerSecond: v.GetFloat64("RATE_LIMIT_PER_SECOND"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		BanStrikeLimit:     v.GetInt("BAN_STRIKE_LIMIT"),
		BanDuration:        v.GetDuration("BAN_DURATION"),
	}
}

// DSN builds the keyword/value connection string for the pgx driver.
// DB_OPTIONS carries extra server options such as a search_path.
func (c Config) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword)
	if c.DBOptions != "" {
		dsn += fmt.Sprintf(" options='%s'", c.DBOptions)
	}
	return dsn
}

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa todo lo que main necesita para levantar el servicio.
type Config struct {
	Port    string `mapstructure:"PORT"`
	AppName string `mapstructure:"APP_NAME"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Vacío => stores in-memory.
	DBDSN string `mapstructure:"DB_DSN"`

	ReadTimeout     time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	// RateLimitRPS <= 0 desactiva el limitador.
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	DailyCapacity int `mapstructure:"SCHEDULE_DAILY_CAPACITY"`
	SlotCapacity  int `mapstructure:"SCHEDULE_SLOT_CAPACITY"`
}

var keys = []string{
	"PORT", "APP_NAME", "LOG_LEVEL", "LOG_FORMAT", "DB_DSN",
	"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"SCHEDULE_DAILY_CAPACITY", "SCHEDULE_SLOT_CAPACITY",
}

// Load lee .env (si existe) y luego variables de entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_NAME", "clinic-scheduling")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("HTTP_READ_TIMEOUT", "5s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("SCHEDULE_DAILY_CAPACITY", 20)
	v.SetDefault("SCHEDULE_SLOT_CAPACITY", 2)

	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DailyCapacity <= 0 {
		return fmt.Errorf("SCHEDULE_DAILY_CAPACITY must be positive, got %d", c.DailyCapacity)
	}
	if c.SlotCapacity <= 0 {
		return fmt.Errorf("SCHEDULE_SLOT_CAPACITY must be positive, got %d", c.SlotCapacity)
	}
	if c.SlotCapacity > c.DailyCapacity {
		return fmt.Errorf("SCHEDULE_SLOT_CAPACITY (%d) cannot exceed SCHEDULE_DAILY_CAPACITY (%d)", c.SlotCapacity, c.DailyCapacity)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive when RATE_LIMIT_RPS is set")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) UsesPostgres() bool {
	return c.DBDSN != ""
}

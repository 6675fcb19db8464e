package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Billing  BillingConfig  `mapstructure:"billing"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BillingConfig tunes the batch processor.
type BillingConfig struct {
	PageSize    int `mapstructure:"page_size"`    // invoices per keyset page
	MaxAttempts int `mapstructure:"max_attempts"` // charge tries per invoice per pass
	WorkerLimit int `mapstructure:"worker_limit"` // concurrent attempts within a page
}

// ScheduleConfig holds the cron calendar for the two triggers.
type ScheduleConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ChargeCron   string `mapstructure:"charge_cron"`
	ReminderCron string `mapstructure:"reminder_cron"`
}

// NotifyConfig selects the notification sink.
type NotifyConfig struct {
	Sink   string `mapstructure:"sink"`   // log, redis
	Stream string `mapstructure:"stream"` // redis stream key
	MaxLen int64  `mapstructure:"maxlen"` // approximate stream cap
}

// GatewayConfig tunes the simulated payment gateway.
type GatewayConfig struct {
	SuccessRate   float64 `mapstructure:"success_rate"`   // share of charges captured
	TransientRate float64 `mapstructure:"transient_rate"` // share of failures reported as network errors
	Seed          int64   `mapstructure:"seed"`           // 0 = seeded from the clock
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: BILLING_.
// Nested keys use underscore: BILLING_DATABASE_HOST, BILLING_SCHEDULE_CHARGE_CRON, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "billing")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("billing.page_size", 50)
	v.SetDefault("billing.max_attempts", 4)
	v.SetDefault("billing.worker_limit", 0) // 0 = page size
	v.SetDefault("schedule.enabled", true)
	// Charge a few times on the first of the month, remind in the evening.
	v.SetDefault("schedule.charge_cron", "0 5,10,15 1 * *")
	v.SetDefault("schedule.reminder_cron", "0 20 1 * *")
	v.SetDefault("notify.sink", "log")
	v.SetDefault("notify.stream", "billing:notifications")
	v.SetDefault("notify.maxlen", 100000)
	v.SetDefault("gateway.success_rate", 0.5)
	v.SetDefault("gateway.transient_rate", 0.1)
	v.SetDefault("gateway.seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: BILLING_DATABASE_HOST -> database.host
	v.SetEnvPrefix("BILLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "billing", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, int32(5), cfg.Database.MinConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, 50, cfg.Billing.PageSize)
	assert.Equal(t, 4, cfg.Billing.MaxAttempts)
	assert.Equal(t, 0, cfg.Billing.WorkerLimit)

	assert.True(t, cfg.Schedule.Enabled)
	assert.Equal(t, "0 5,10,15 1 * *", cfg.Schedule.ChargeCron)
	assert.Equal(t, "0 20 1 * *", cfg.Schedule.ReminderCron)

	assert.Equal(t, "log", cfg.Notify.Sink)
	assert.Equal(t, "billing:notifications", cfg.Notify.Stream)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090
  mode: "release"
database:
  host: "db.example.com"
  port: 5433
  user: "billing"
  password: "secret123"
  dbname: "billing_prod"
  sslmode: "require"
redis:
  host: "redis.example.com"
  port: 6380
  password: "redispwd"
  db: 2
billing:
  page_size: 25
  max_attempts: 2
  worker_limit: 8
schedule:
  enabled: false
  charge_cron: "0 6 1 * *"
  reminder_cron: "0 21 1 * *"
notify:
  sink: "redis"
  stream: "mailer:events"
log:
  level: "debug"
  pretty: true
`)
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)

	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "billing", cfg.Database.User)
	assert.Equal(t, "secret123", cfg.Database.Password)
	assert.Equal(t, "billing_prod", cfg.Database.DBName)
	assert.Equal(t, "require", cfg.Database.SSLMode)

	assert.Equal(t, 25, cfg.Billing.PageSize)
	assert.Equal(t, 2, cfg.Billing.MaxAttempts)
	assert.Equal(t, 8, cfg.Billing.WorkerLimit)

	assert.False(t, cfg.Schedule.Enabled)
	assert.Equal(t, "0 6 1 * *", cfg.Schedule.ChargeCron)

	assert.Equal(t, "redis", cfg.Notify.Sink)
	assert.Equal(t, "mailer:events", cfg.Notify.Stream)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server: [not a map"), 0644))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "u", Password: "p", DBName: "billing", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@localhost:5432/billing?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "10.0.0.1", Port: 6379}
	assert.Equal(t, "10.0.0.1:6379", r.Addr())
}

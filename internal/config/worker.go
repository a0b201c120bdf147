package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// WorkerConfig is the standalone configuration of the notification
// worker. The worker runs in its own container and reads everything
// from the environment.
type WorkerConfig struct {
	DatabaseHost     string        `envconfig:"DB_HOST" default:"localhost"`
	DatabasePort     int           `envconfig:"DB_PORT" default:"5432"`
	DatabaseUser     string        `envconfig:"DB_USER" default:"postgres"`
	DatabasePassword string        `envconfig:"DB_PASSWORD"`
	DatabaseName     string        `envconfig:"DB_NAME" default:"salon"`
	DatabaseSSLMode  string        `envconfig:"DB_SSLMODE" default:"disable"`
	RedisAddr        string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword    string        `envconfig:"REDIS_PASSWORD"`
	RedisDB          int           `envconfig:"REDIS_DB" default:"0"`
	PollInterval     time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	BatchSize        int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	MaxRetries       int           `envconfig:"OUTBOX_MAX_RETRIES" default:"3"`
	SMTPHost         string        `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort         int           `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername     string        `envconfig:"SMTP_USERNAME"`
	SMTPPassword     string        `envconfig:"SMTP_PASSWORD"`
	SMTPFrom         string        `envconfig:"SMTP_FROM" default:"no-reply@coiffly.ch"`
}

func LoadWorkerConfig() (*WorkerConfig, error) {
	var cfg WorkerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process worker config: %w", err)
	}
	return &cfg, nil
}

// Database adapts the flat env settings to the shared connection config.
func (c *WorkerConfig) Database() DatabaseConfig {
	return DatabaseConfig{
		Host:     c.DatabaseHost,
		Port:     c.DatabasePort,
		User:     c.DatabaseUser,
		Password: c.DatabasePassword,
		Name:     c.DatabaseName,
		SSLMode:  c.DatabaseSSLMode,
	}
}

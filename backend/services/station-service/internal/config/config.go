package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "evstation/backend/libs/config"
)

const (
	defaultPort         = "3000"
	defaultPingInterval = 30 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

// Config defines station service configuration.
type Config struct {
	HTTP struct {
		Port        string   `yaml:"port" env:"STATION_HTTP_PORT"`
		CORSOrigins []string `yaml:"corsOrigins" env:"STATION_CORS_ORIGINS"`
	} `yaml:"http"`
	WebSocket struct {
		PingInterval time.Duration `yaml:"pingInterval" env:"STATION_WS_PING_INTERVAL"`
		WriteTimeout time.Duration `yaml:"writeTimeout" env:"STATION_WS_WRITE_TIMEOUT"`
	} `yaml:"websocket"`
	Redis struct {
		Addr     string `yaml:"addr" env:"STATION_REDIS_ADDR"`
		Password string `yaml:"password" env:"STATION_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"STATION_REDIS_DB"`
		Channel  string `yaml:"channel" env:"STATION_REDIS_CHANNEL"`
	} `yaml:"redis"`
	Kafka struct {
		Brokers []string `yaml:"brokers" env:"STATION_KAFKA_BROKERS"`
		Topic   string   `yaml:"topic" env:"STATION_KAFKA_TOPIC"`
	} `yaml:"kafka"`
	Influx struct {
		URL    string `yaml:"url" env:"STATION_INFLUX_URL"`
		Token  string `yaml:"token" env:"STATION_INFLUX_TOKEN"`
		Org    string `yaml:"org" env:"STATION_INFLUX_ORG"`
		Bucket string `yaml:"bucket" env:"STATION_INFLUX_BUCKET"`
	} `yaml:"influx"`
}

// Load reads configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = defaultPort
	cfg.HTTP.CORSOrigins = []string{"*"}
	cfg.WebSocket.PingInterval = defaultPingInterval
	cfg.WebSocket.WriteTimeout = defaultWriteTimeout

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every enabled sink is fully configured.
func (c *Config) Validate() error {
	if c.InfluxEnabled() {
		if strings.TrimSpace(c.Influx.Org) == "" || strings.TrimSpace(c.Influx.Bucket) == "" {
			return errors.New("config: influx org and bucket required when url is set")
		}
	}
	if c.Redis.DB < 0 {
		return errors.New("config: redis db must not be negative")
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// AllowedOrigins returns CORS origins, any origin when unset.
func (c *Config) AllowedOrigins() []string {
	if len(c.HTTP.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return c.HTTP.CORSOrigins
}

// PingInterval returns websocket ping interval.
func (c *Config) PingInterval() time.Duration {
	if c.WebSocket.PingInterval <= 0 {
		return defaultPingInterval
	}
	return c.WebSocket.PingInterval
}

// WriteTimeout returns websocket write timeout.
func (c *Config) WriteTimeout() time.Duration {
	if c.WebSocket.WriteTimeout <= 0 {
		return defaultWriteTimeout
	}
	return c.WebSocket.WriteTimeout
}

// RedisEnabled reports whether events go to Redis.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

// KafkaEnabled reports whether events go to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// InfluxEnabled reports whether station metrics go to InfluxDB.
func (c *Config) InfluxEnabled() bool {
	return strings.TrimSpace(c.Influx.URL) != ""
}

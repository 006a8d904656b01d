package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddress() != ":3000" {
		t.Fatalf("unexpected address %s", cfg.HTTPAddress())
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins(), []string{"*"}) {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins())
	}
	if cfg.PingInterval() != 30*time.Second || cfg.WriteTimeout() != 10*time.Second {
		t.Fatalf("unexpected websocket timings %s %s", cfg.PingInterval(), cfg.WriteTimeout())
	}
	if cfg.RedisEnabled() || cfg.KafkaEnabled() || cfg.InfluxEnabled() {
		t.Fatalf("sinks should be disabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STATION_HTTP_PORT", ":8090")
	t.Setenv("STATION_CORS_ORIGINS", "http://localhost:5173,https://dash.example.com")
	t.Setenv("STATION_KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("STATION_REDIS_ADDR", "localhost:6379")
	t.Setenv("STATION_WS_PING_INTERVAL", "5s")
	t.Setenv("STATION_WS_WRITE_TIMEOUT", "1500ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddress() != ":8090" {
		t.Fatalf("unexpected address %s", cfg.HTTPAddress())
	}
	if len(cfg.AllowedOrigins()) != 2 {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins())
	}
	if !cfg.KafkaEnabled() || !cfg.RedisEnabled() {
		t.Fatalf("expected kafka and redis enabled")
	}
	if cfg.PingInterval() != 5*time.Second {
		t.Fatalf("unexpected ping interval %s", cfg.PingInterval())
	}
	if cfg.WriteTimeout() != 1500*time.Millisecond {
		t.Fatalf("unexpected write timeout %s", cfg.WriteTimeout())
	}
}

func TestLoadDurationsFromYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "station.yaml")
	if err := os.WriteFile(path, []byte("websocket:\n  pingInterval: 45s\n  writeTimeout: 2s\n"), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PingInterval() != 45*time.Second || cfg.WriteTimeout() != 2*time.Second {
		t.Fatalf("unexpected websocket timings %s %s", cfg.PingInterval(), cfg.WriteTimeout())
	}
}

func TestLoadRejectsBareNumberDuration(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STATION_WS_PING_INTERVAL", "5")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for duration without unit")
	}
}

func TestValidateInflux(t *testing.T) {
	cfg := &Config{}
	cfg.Influx.URL = "http://localhost:8086"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without org and bucket")
	}
	cfg.Influx.Org = "ev"
	cfg.Influx.Bucket = "station"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

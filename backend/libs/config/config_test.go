package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

type testConfig struct {
	HTTP struct {
		Port string `yaml:"port" env:"TEST_HTTP_PORT"`
	} `yaml:"http"`
	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`
	Timeout time.Duration `yaml:"timeout" env:"TEST_TIMEOUT"`
	Retries int           `yaml:"retries" env:"TEST_RETRIES"`
	Ignored string        `env:"-"`
}

func TestLoadConfigRejectsBadTargets(t *testing.T) {
	if err := LoadConfig(nil); err == nil {
		t.Fatalf("expected error for nil target")
	}
	var cfg testConfig
	if err := LoadConfig(cfg); err == nil {
		t.Fatalf("expected error for non-pointer target")
	}
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "config.yaml")
	yamlBody := "http:\n  port: \"4000\"\nkafka:\n  brokers: [\"a:9092\"]\n  topic: from-yaml\nretries: 2\n"
	if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TEST_HTTP_PORT", "5000")
	t.Setenv("KAFKA_BROKERS", "b:9092, c:9092,")
	t.Setenv("TEST_TIMEOUT", "750ms")

	var cfg testConfig
	if err := LoadConfig(&cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Port != "5000" {
		t.Fatalf("env should override yaml port, got %s", cfg.HTTP.Port)
	}
	if !reflect.DeepEqual(cfg.Kafka.Brokers, []string{"b:9092", "c:9092"}) {
		t.Fatalf("unexpected brokers %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.Topic != "from-yaml" || cfg.Retries != 2 {
		t.Fatalf("yaml values lost: %+v", cfg)
	}
	if cfg.Timeout != 750*time.Millisecond {
		t.Fatalf("unexpected timeout %s", cfg.Timeout)
	}
}

func TestLoadConfigDotenvDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TEST_RETRIES=7\nTEST_HTTP_PORT=6000\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv("TEST_HTTP_PORT", "7000")
	t.Setenv("TEST_RETRIES", "")
	os.Unsetenv("TEST_RETRIES")

	var cfg testConfig
	if err := LoadConfig(&cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Retries != 7 {
		t.Fatalf("expected retries from .env, got %d", cfg.Retries)
	}
	if cfg.HTTP.Port != "7000" {
		t.Fatalf("process env should win over .env, got %s", cfg.HTTP.Port)
	}
}

func TestLoadConfigMissingExplicitDotenv(t *testing.T) {
	t.Setenv("DOTENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	var cfg testConfig
	if err := LoadConfig(&cfg); err == nil {
		t.Fatalf("expected error for missing explicit dotenv file")
	}
}

func TestLoadConfigParseError(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TEST_RETRIES", "many")

	var cfg testConfig
	if err := LoadConfig(&cfg); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "*", []string{"*"}},
		{"spaces", " a , ,b ", []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitList(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitList(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
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

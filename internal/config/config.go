package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr     = ":8080"
	defaultMaxUploadBytes = 64 << 20
	defaultMaxMemoryBytes = 32 << 20
	defaultTempTTL        = 24 * time.Hour
	defaultGCInterval     = 30 * time.Minute
	defaultLogLevel       = "info"
	defaultMetricsPath    = "/metrics"
	defaultTraceExporter  = "none"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr" json:"listen_addr" env:"LISTEN_ADDR"`
	// UploadDir — каталог, относительно которого разрешаются имена файлов.
	// Пустое значение означает рабочий каталог процесса.
	UploadDir      string        `yaml:"upload_dir" json:"upload_dir" env:"UPLOAD_DIR"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" json:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"`
	MaxMemoryBytes int64         `yaml:"max_memory_bytes" json:"max_memory_bytes" env:"MAX_MEMORY_BYTES"`
	TempTTL        time.Duration `yaml:"temp_ttl" json:"temp_ttl" env:"TEMP_TTL"`
	GCInterval     time.Duration `yaml:"gc_interval" json:"gc_interval" env:"GC_INTERVAL"`
	LogLevel       string        `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`
	MetricsPath    string        `yaml:"metrics_path" json:"metrics_path" env:"METRICS_PATH"`
	// TraceExporter: none или stdout.
	TraceExporter string `yaml:"trace_exporter" json:"trace_exporter" env:"TRACE_EXPORTER"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		ListenAddr:     defaultListenAddr,
		MaxUploadBytes: defaultMaxUploadBytes,
		MaxMemoryBytes: defaultMaxMemoryBytes,
		TempTTL:        defaultTempTTL,
		GCInterval:     defaultGCInterval,
		LogLevel:       defaultLogLevel,
		MetricsPath:    defaultMetricsPath,
		TraceExporter:  defaultTraceExporter,
	}
}

// Load читает .env и YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствующий файл конфигурации не считается ошибкой.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	return LoadFile(getenv("CONFIG_PATH", "./config.yaml"))
}

// LoadFile читает YAML по указанному пути поверх значений по умолчанию и применяет ENV.
func LoadFile(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// ENV override
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate проверяет значения, которые нельзя исправить молча.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr is not configured")
	}
	if c.MaxUploadBytes < 0 {
		return errors.New("max_upload_bytes must be >= 0")
	}
	if c.MaxMemoryBytes <= 0 {
		return errors.New("max_memory_bytes must be > 0")
	}
	if c.TempTTL < 0 || c.GCInterval < 0 {
		return errors.New("temp_ttl and gc_interval must be >= 0")
	}
	switch c.TraceExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("trace_exporter %q: want none or stdout", c.TraceExporter)
	}

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}

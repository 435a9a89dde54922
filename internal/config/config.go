package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server" envconfig:"SERVER"`
	Security      SecurityConfig      `yaml:"security" envconfig:"SECURITY"`
	Logging       LoggingConfig       `yaml:"logging" envconfig:"LOGGING"`
	Observability ObservabilityConfig `yaml:"observability" envconfig:"OBSERVABILITY"`
	Paths         PathsConfig         `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// ObservabilityConfig contains tracing and metrics configuration
type ObservabilityConfig struct {
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" default:"prometheus"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	DatasetFile string `yaml:"dataset_file" envconfig:"DATASET_FILE" default:"Usecase2_dataOlive_Oil.csv"`
	ReportsDir  string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from a .env file (if present), environment
// variables, and an optional YAML config file. Environment variables win over
// file values.
func Load() (*Config, error) {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	var cfg Config

	if configFile := findConfigFile(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileCfg
	}

	if err := envconfig.Process("OLIVE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified when CORS is enabled")
	}

	switch c.Observability.TraceExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", c.Observability.TraceExporter)
	}

	switch c.Observability.MetricExporter {
	case "none", "prometheus":
	default:
		return fmt.Errorf("unsupported metric exporter: %s", c.Observability.MetricExporter)
	}

	if c.Observability.SampleRatio < 0 || c.Observability.SampleRatio > 1 {
		return fmt.Errorf("trace sample ratio must be in [0, 1], got %v", c.Observability.SampleRatio)
	}

	if c.Paths.DatasetFile == "" {
		return fmt.Errorf("dataset file must be specified")
	}

	return nil
}

// DatasetPath returns the resolved path of the source table.
func (c *Config) DatasetPath() string {
	if filepath.IsAbs(c.Paths.DatasetFile) {
		return c.Paths.DatasetFile
	}
	return filepath.Join(c.Paths.DataDir, c.Paths.DatasetFile)
}

// ReportPath returns the resolved path of a report file.
func (c *Config) ReportPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(c.Paths.ReportsDir, filename)
}

// EnsureDirectories creates the directories the application writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ReportsDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// findConfigFile returns the path of the first config file found
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Observability: ObservabilityConfig{
			Environment:    "development",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
		Paths: PathsConfig{
			DataDir:     "data",
			DatasetFile: "Usecase2_dataOlive_Oil.csv",
			ReportsDir:  "reports",
			LogsDir:     "logs",
		},
	}
}

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "none", cfg.Observability.TraceExporter)
	assert.Equal(t, "prometheus", cfg.Observability.MetricExporter)
	assert.Equal(t, "Usecase2_dataOlive_Oil.csv", cfg.Paths.DatasetFile)
	require.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "non-positive read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name: "cors without origins",
			mutate: func(c *Config) {
				c.Security.EnableCORS = true
				c.Security.AllowedOrigins = nil
			},
			wantErr: "allowed origin",
		},
		{
			name:    "empty dataset file",
			mutate:  func(c *Config) { c.Paths.DatasetFile = "" },
			wantErr: "dataset file",
		},
		{
			name:    "unknown trace exporter",
			mutate:  func(c *Config) { c.Observability.TraceExporter = "jaeger" },
			wantErr: "trace exporter",
		},
		{
			name:    "unknown metric exporter",
			mutate:  func(c *Config) { c.Observability.MetricExporter = "statsd" },
			wantErr: "metric exporter",
		},
		{
			name:    "sample ratio out of range",
			mutate:  func(c *Config) { c.Observability.SampleRatio = 1.5 },
			wantErr: "sample ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatasetPath(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "data"
	cfg.Paths.DatasetFile = "inventory.csv"
	assert.Equal(t, filepath.Join("data", "inventory.csv"), cfg.DatasetPath())

	abs := filepath.Join(t.TempDir(), "inventory.csv")
	cfg.Paths.DatasetFile = abs
	assert.Equal(t, abs, cfg.DatasetPath())
}

func TestReportPath(t *testing.T) {
	cfg := Default()
	cfg.Paths.ReportsDir = "reports"
	assert.Equal(t, filepath.Join("reports", "summary.csv"), cfg.ReportPath("summary.csv"))
}

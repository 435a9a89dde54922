package services

import (
	"context"
	"os"
	"time"

	"olivepulse/internal/config"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthService reports liveness and readiness. Readiness requires the
// source table to be present on disk, since every request reloads it.
type HealthService struct {
	cfg     *config.Config
	version string
	started time.Time
}

// NewHealthService creates a health service
func NewHealthService(cfg *config.Config, version string) *HealthService {
	return &HealthService{
		cfg:     cfg,
		version: version,
		started: time.Now(),
	}
}

// Liveness reports whether the process is running. Always healthy.
func (s *HealthService) Liveness(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Version:   s.version,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	}
}

// Readiness reports whether the service can serve forecasts.
func (s *HealthService) Readiness(ctx context.Context) HealthStatus {
	status := s.Liveness(ctx)
	status.Checks = map[string]string{"dataset": "ok"}

	if _, err := os.Stat(s.cfg.DatasetPath()); err != nil {
		status.Status = "degraded"
		status.Checks["dataset"] = "dataset file not readable: " + err.Error()
	}

	return status
}

package services

import (
	"context"
	"log/slog"
	"time"

	"olivepulse/internal/config"
	"olivepulse/internal/dataset"
	"olivepulse/internal/forecast"
	"olivepulse/internal/infrastructure"
	"olivepulse/pkg/contracts/domain"
)

// ForecastService runs the forecasting pipeline: load the source table,
// normalize, derive metrics, then build the drilldown tree and the two
// rollups. Each call reloads the table from disk; nothing is cached across
// requests, so edits to the source file show up on the next request.
type ForecastService struct {
	cfg        *config.Config
	loader     *dataset.Loader
	normalizer *forecast.Normalizer
	metrics    *infrastructure.PipelineMetrics
	logger     *slog.Logger
}

// NewForecastService creates a forecast service
func NewForecastService(cfg *config.Config, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *ForecastService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &ForecastService{
		cfg:        cfg,
		loader:     dataset.NewLoader(logger),
		normalizer: forecast.NewNormalizer(logger),
		metrics:    metrics,
		logger:     logger.With(slog.String("component", "forecast_service")),
	}
}

// GetForecast executes the pipeline and assembles the response. Any upstream
// failure short-circuits the run; there is no partial response.
func (s *ForecastService) GetForecast(ctx context.Context) (*domain.ForecastResponse, error) {
	start := time.Now()

	response, rowsIn, rowsDropped, err := s.run(ctx)

	infrastructure.RecordPipelineRun(ctx, s.metrics, time.Since(start), rowsIn, rowsDropped, err)

	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "pipeline completed",
		slog.Int("rows_ingested", rowsIn),
		slog.Int("rows_dropped", rowsDropped),
		slog.Int("products", len(response.Products)),
		slog.Int("quarters", len(response.QuarterlyEfficiency)),
		slog.Duration("duration", time.Since(start)))

	return response, nil
}

func (s *ForecastService) run(ctx context.Context) (*domain.ForecastResponse, int, int, error) {
	table, err := s.loader.Load(ctx, s.cfg.DatasetPath())
	if err != nil {
		return nil, 0, 0, err
	}

	records, dropped, err := s.normalizer.Normalize(ctx, table)
	if err != nil {
		return nil, len(table.Rows), dropped, err
	}

	derived := forecast.DeriveAll(records)

	response := &domain.ForecastResponse{
		Products:            forecast.BuildDrilldown(derived),
		QuarterlyEfficiency: forecast.QuarterlyRollup(derived),
		EfficiencyTable:     forecast.EfficiencyRollup(derived),
	}

	return response, len(table.Rows), dropped, nil
}

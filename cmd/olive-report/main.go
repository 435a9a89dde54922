// Command olive-report runs the forecasting pipeline once and writes the two
// rollup summaries as CSV reports, without starting the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"olivepulse/internal/config"
	"olivepulse/internal/exporter"
	"olivepulse/internal/infrastructure"
	"olivepulse/internal/services"
)

func main() {
	quarterlyOut := flag.String("quarterly", "quarterly_efficiency.csv", "output file for the quarterly rollup")
	efficiencyOut := flag.String("efficiency", "efficiency_table.csv", "output file for the efficiency table")
	flag.Parse()

	if err := run(*quarterlyOut, *efficiencyOut); err != nil {
		fmt.Fprintf(os.Stderr, "report failed: %v\n", err)
		os.Exit(1)
	}
}

func run(quarterlyOut, efficiencyOut string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	ctx := context.Background()

	service := services.NewForecastService(cfg, nil, logger)
	response, err := service.GetForecast(ctx)
	if err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return exporter.WriteQuarterlyCSV(cfg.ReportPath(quarterlyOut), response.QuarterlyEfficiency)
	})
	g.Go(func() error {
		return exporter.WriteEfficiencyCSV(cfg.ReportPath(efficiencyOut), response.EfficiencyTable)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "reports written",
		"quarterly", cfg.ReportPath(quarterlyOut),
		"efficiency", cfg.ReportPath(efficiencyOut))

	return nil
}

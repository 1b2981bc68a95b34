// Command uranium-map renders a CSV of uranium concentration readings as an
// interactive 3D column map in a single HTML file.
//
// Usage:
//
//	uranium-map -i nevada_wells.csv [-o map.html] [-c viridis] [-s dark] [--no-metadata]
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/couchcryptid/uranium-map/internal/adapter/csvfile"
	"github.com/couchcryptid/uranium-map/internal/adapter/deckgl"
	"github.com/couchcryptid/uranium-map/internal/config"
	"github.com/couchcryptid/uranium-map/internal/observability"
	"github.com/couchcryptid/uranium-map/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(os.Stderr, cfg, uuid.NewString())
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reader := csvfile.NewReader(cfg.Input, logger)
	writer := deckgl.NewWriter(cfg.Output, cfg.Input, cfg.Style, cfg.MapboxToken, logger)

	p := pipeline.New(reader, writer, pipeline.Options{
		Scheme:     cfg.Scheme,
		NoMetadata: cfg.NoMetadata,
	}, logger, metrics)

	logger.Info("starting",
		"input", cfg.Input,
		"output", cfg.Output,
		"scheme", cfg.Scheme.String(),
		"scheme_description", cfg.Scheme.Description(),
		"style", cfg.Style.String(),
	)

	res, err := p.Run(ctx)
	code := 0
	if err != nil {
		logger.Error("run failed", "error", err)
		code = 1
	} else {
		logger.Info("3D map saved",
			"path", writer.Path(),
			"points", res.Points,
			"rows_rejected", len(res.Report.Rejections),
			"metadata", res.MetadataInjected,
		)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("could not write metrics", "error", err)
		}
	}

	return code
}

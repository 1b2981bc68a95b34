package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/uranium-map/internal/domain"
	"github.com/couchcryptid/uranium-map/internal/observability"
)

// Extractor reads every raw row from the source.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.RawRow, error)
}

// Loader writes the rendered scene and patches the metadata overlay into it.
type Loader interface {
	Load(ctx context.Context, scene domain.Scene) error
	InjectMetadata(ctx context.Context, stats domain.Statistics) error
}

// Options are the per-run rendering choices.
type Options struct {
	Scheme     domain.Scheme
	NoMetadata bool
}

// Result describes a completed run.
type Result struct {
	Report           domain.CleanReport
	Stats            domain.Statistics
	Points           int
	HeightMode       string
	MetadataInjected bool
	MetadataErr      error // non-nil when the overlay patch failed; the run still succeeded
}

// Pipeline runs extract → clean → statistics → assemble → load → annotate
// once, synchronously.
type Pipeline struct {
	extractor Extractor
	loader    Loader
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, l Loader, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: e,
		loader:    l,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run executes the batch. Fatal conditions (schema, empty dataset, write
// failure, cancellation) are returned as errors; a failed metadata patch is
// logged and reported in Result.MetadataErr.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result

	start := time.Now()
	rows, err := p.extractor.Extract(ctx)
	if err != nil {
		return res, fmt.Errorf("extract: %w", err)
	}
	p.observe("extract", start)
	p.metrics.RowsRead.Add(float64(len(rows)))

	start = time.Now()
	readings, report := domain.Clean(rows, p.logger)
	res.Report = report
	p.recordCleaning(report)
	if len(readings) == 0 {
		return res, fmt.Errorf("clean %d rows: %w", report.Total, domain.ErrNoReadings)
	}

	stats, err := domain.ComputeStatistics(readings)
	if err != nil {
		return res, fmt.Errorf("statistics: %w", err)
	}
	res.Stats = stats
	p.logStatistics(stats)

	scene, err := domain.AssembleScene(readings, stats, p.opts.Scheme)
	if err != nil {
		return res, err
	}
	p.observe("transform", start)
	res.Points = len(scene.Points)
	res.HeightMode = scene.HeightMode

	if scene.Degenerate {
		p.logger.Warn("degenerate concentration range", "warning", domain.ErrDegenerateRange, "value", stats.Min)
	}
	p.logger.Info("scene assembled",
		"points", len(scene.Points),
		"scheme", scene.Scheme,
		"height_mode", scene.HeightMode,
		"zoom", scene.View.Zoom,
		"radius_m", scene.Layer.Radius,
	)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	start = time.Now()
	if err := p.loader.Load(ctx, scene); err != nil {
		return res, fmt.Errorf("load: %w", err)
	}
	p.observe("load", start)
	p.metrics.PointsRendered.Set(float64(len(scene.Points)))

	if p.opts.NoMetadata {
		return res, nil
	}

	start = time.Now()
	if err := p.loader.InjectMetadata(ctx, stats); err != nil {
		if !errors.Is(err, domain.ErrMetadataPatch) {
			err = fmt.Errorf("%w: %w", domain.ErrMetadataPatch, err)
		}
		p.logger.Warn("could not add metadata to map", "error", err)
		p.metrics.MetadataFailure.Inc()
		res.MetadataErr = err
		return res, nil
	}
	p.observe("annotate", start)
	res.MetadataInjected = true

	return res, nil
}

func (p *Pipeline) recordCleaning(report domain.CleanReport) {
	p.metrics.RowsClamped.Add(float64(report.Clamped))
	for _, reason := range domain.RejectReasons {
		p.metrics.RowsRejected.WithLabelValues(reason.String()).Add(float64(report.Rejected(reason)))
	}
	p.logger.Info("cleaning complete",
		"rows_in", report.Total,
		"rows_kept", report.Kept,
		"rows_clamped", report.Clamped,
		"rows_rejected", len(report.Rejections),
	)
	for _, rej := range report.Rejections {
		p.logger.Debug("row rejected", "line", rej.Line, "reason", rej.Reason.String())
	}
}

func (p *Pipeline) logStatistics(s domain.Statistics) {
	p.logger.Info("dataset statistics",
		"count", s.Count,
		slog.Group("concentration_ug_l",
			"min", round2(s.Min),
			"max", round2(s.Max),
			"mean", round2(s.Mean),
			"median", round2(s.Median),
			"std", round2(s.Std),
			"q25", round2(s.Q25),
			"q75", round2(s.Q75),
		),
		slog.Group("geo",
			"center_lat", fmt.Sprintf("%.4f", s.CenterLat),
			"center_lon", fmt.Sprintf("%.4f", s.CenterLon),
			"lat_range", s.LatRange,
			"lon_range", s.LonRange,
			"spread_km", round2(s.SpreadKm),
		),
	)
}

func (p *Pipeline) observe(stage string, start time.Time) {
	p.metrics.RunDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// round2 formats v with two decimals for log output.
func round2(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

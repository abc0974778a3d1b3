// Package pipeline runs the source adapters, merges their output and applies
// the global post-processing pass.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"swipecatalog/internal/classifier"
	"swipecatalog/internal/config"
	"swipecatalog/internal/logger"
	"swipecatalog/internal/metrics"
	"swipecatalog/internal/models"
	"swipecatalog/internal/normalizer"
	"swipecatalog/internal/source"
)

// ErrNoRecords is returned when every source came back empty or failed.
var ErrNoRecords = normalizer.ErrNoRecords

// SourceStats describes what one adapter contributed.
type SourceStats struct {
	Name     string
	File     string
	Records  int
	Duration time.Duration
	Err      error
}

// Result is the unified catalog and the bookkeeping of the run that built it.
type Result struct {
	Products []models.Product
	Sources  []SourceStats
	Report   *normalizer.Report

	// ValidationErr holds invariant violations that were tolerated outside strict mode.
	ValidationErr error
}

// Failed returns the names of sources that contributed nothing because of an error.
func (r *Result) Failed() []string {
	var names []string

	for _, s := range r.Sources {
		if s.Err != nil {
			names = append(names, s.Name)
		}
	}

	return names
}

// CountBySource returns records per source name.
func (r *Result) CountBySource() map[string]int {
	counts := make(map[string]int, len(r.Sources))
	for _, s := range r.Sources {
		counts[s.Name] = s.Records
	}

	return counts
}

// Pipeline turns the configured retailer feeds into one catalog.
type Pipeline struct {
	inputDir  string
	adapters  []source.Adapter
	processor *normalizer.Processor
	parallel  bool
	workers   int
	strict    bool
	log       *logger.Logger
	metrics   *metrics.Recorder
}

// New builds the adapters for every enabled source in cfg. rec may be nil.
func New(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) (*Pipeline, error) {
	cls := classifier.New(cfg.ClassifierOptions())

	enabled := cfg.GetEnabledSources()
	adapters := make([]source.Adapter, 0, len(enabled))

	for _, sc := range enabled {
		layout, err := sc.Layout()
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", sc.Name, err)
		}

		adapters = append(adapters, source.NewRetailer(layout, cls))
	}

	return NewWithAdapters(cfg, adapters, log, rec), nil
}

// NewWithAdapters runs the given adapters instead of the configured sources.
func NewWithAdapters(cfg *config.Config, adapters []source.Adapter, log *logger.Logger, rec *metrics.Recorder) *Pipeline {
	workers := cfg.Advanced.MaxWorkers
	if workers < 1 {
		workers = 1
	}

	return &Pipeline{
		inputDir:  cfg.Catalog.InputDir,
		adapters:  adapters,
		processor: normalizer.NewProcessor(cfg.Thresholds(), cfg.FillDefaults()),
		parallel:  cfg.Advanced.ParallelSources,
		workers:   workers,
		strict:    cfg.Features.StrictValidation,
		log:       log,
		metrics:   rec,
	}
}

// Run adapts every source, merges in source order and post-processes the result.
// A failing source is logged and contributes no records. ErrNoRecords is returned
// when nothing survives adaptation.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	batches, stats, err := p.adaptAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Sources: stats}

	merged, err := normalizer.Merge(batches...)
	if err != nil {
		return result, err
	}

	p.log.Info(fmt.Sprintf("🔗 Merged %d records from %d sources", len(merged), len(batches)-len(result.Failed())))

	report, err := p.processor.Process(merged)
	result.Products = merged
	result.Report = report

	p.observeReport(report)

	if report != nil {
		p.log.Debug("post-processing done",
			"prices_resolved", report.PricesResolved,
			"prices_unresolved", report.PricesUnresolved,
			"filled", report.Filled)
	}

	if err != nil {
		if p.strict {
			return result, err
		}

		result.ValidationErr = err
		p.log.Warn(fmt.Sprintf("⚠️  %v", err))
	}

	return result, nil
}

func (p *Pipeline) adaptAll(ctx context.Context) ([][]models.Product, []SourceStats, error) {
	batches := make([][]models.Product, len(p.adapters))
	stats := make([]SourceStats, len(p.adapters))

	if !p.parallel {
		for i, a := range p.adapters {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}

			batches[i], stats[i] = p.adaptOne(ctx, a)
		}

		return batches, stats, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, a := range p.adapters {
		i, a := i, a
		g.Go(func() error {
			batches[i], stats[i] = p.adaptOne(gctx, a)
			return nil
		})
	}

	// Source failures are kept in stats; only cancellation stops the run.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	return batches, stats, nil
}

func (p *Pipeline) adaptOne(ctx context.Context, a source.Adapter) ([]models.Product, SourceStats) {
	start := time.Now()
	st := SourceStats{Name: a.Name(), File: a.Layout().File}

	log := p.log.With("source", st.Name, "file", st.File)

	products, err := source.Load(ctx, a, p.inputDir)
	st.Duration = time.Since(start)

	if err != nil {
		st.Err = err
		log.Error(fmt.Sprintf("❌ Source %s failed: %v", st.Name, err))

		if p.metrics != nil {
			p.metrics.SourceFailures.WithLabelValues(st.Name).Inc()
		}

		return nil, st
	}

	st.Records = len(products)
	log.Info(fmt.Sprintf("✅ %s: %d records (%v)", st.Name, st.Records, st.Duration.Round(time.Millisecond)))

	if p.metrics != nil {
		p.metrics.RecordsAdapted.WithLabelValues(st.Name).Add(float64(st.Records))
	}

	return products, st
}

func (p *Pipeline) observeReport(r *normalizer.Report) {
	if p.metrics == nil || r == nil {
		return
	}

	p.metrics.PricesUnresolved.Add(float64(r.PricesUnresolved))

	for field, n := range r.Filled {
		p.metrics.DefaultsFilled.WithLabelValues(field).Add(float64(n))
	}
}

// Package main provides the catalog command that builds the unified clothing catalog.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"swipecatalog/internal/config"
	"swipecatalog/internal/export"
	"swipecatalog/internal/formatter"
	"swipecatalog/internal/logger"
	"swipecatalog/internal/metrics"
	"swipecatalog/internal/pipeline"
	"swipecatalog/pkg/metadata"
)

const (
	defaultConfigPath = "configs/catalog.yaml"
	manifestFile      = "manifest.json"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	validateOnly := flag.Bool("validate", false, "Validate the configuration and exit")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg, source, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Catalog.Logging.Level)
	log.Info(fmt.Sprintf("⚙️  Configuration: %s (%s)", cfg, source))

	if *validateOnly {
		log.Info("✅ Configuration is valid")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(fmt.Sprintf("❌ %v", err))
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: the -config flag, then CATALOG_CONFIG
// (also read from .env), then configs/catalog.yaml, then the built-in defaults.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		_ = godotenv.Load()
		path = os.Getenv("CATALOG_CONFIG")
	}

	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	if path == "" {
		cfg := config.DefaultConfig()
		return cfg, "defaults", cfg.Validate()
	}

	cfg, err := config.LoadConfig(path)

	return cfg, path, err
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	start := time.Now()
	rec := metrics.NewRecorder()

	log.Info(fmt.Sprintf("🚀 Building catalog from %d sources in %s", len(cfg.GetEnabledSources()), cfg.Catalog.InputDir))

	p, err := pipeline.New(cfg, log, rec)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoRecords) {
			return fmt.Errorf("nothing to write: %w", err)
		}

		return fmt.Errorf("pipeline failed: %w", err)
	}

	if failed := result.Failed(); len(failed) > 0 {
		log.Warn(fmt.Sprintf("⚠️  %d source(s) contributed no records: %v", len(failed), failed))
	}

	written, err := writeOutputs(ctx, cfg, result, rec, log)
	if err != nil {
		return err
	}

	if cfg.Catalog.Output.Manifest {
		if err := writeManifest(cfg, result, written); err != nil {
			return err
		}

		log.Info(fmt.Sprintf("🧾 Manifest: %s", cfg.OutputPath(manifestFile)))
	}

	if cfg.Metrics.Textfile != "" {
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn(fmt.Sprintf("⚠️  %v", err))
		}
	}

	if cfg.Catalog.Logging.ShowSummary {
		fmt.Println()
		fmt.Print(formatter.Summary(result.Products))
	}

	log.Info(fmt.Sprintf("✨ Done: %d records in %v", len(result.Products), time.Since(start).Round(time.Millisecond)))

	return nil
}

func writeOutputs(ctx context.Context, cfg *config.Config, result *pipeline.Result, rec *metrics.Recorder, log *logger.Logger) ([]string, error) {
	out := cfg.Catalog.Output
	n := float64(len(result.Products))

	var written []string

	csvPath := cfg.OutputPath(out.CSVFile)
	if err := export.WriteCSV(csvPath, result.Products); err != nil {
		return nil, err
	}

	rec.RecordsWritten.WithLabelValues("csv").Add(n)
	written = append(written, csvPath)
	log.Info(fmt.Sprintf("✅ Saved CSV: %s", csvPath))

	jsonPath := cfg.OutputPath(out.JSONFile)
	if err := export.WriteJSON(jsonPath, result.Products, out.PrettyPrint); err != nil {
		return nil, err
	}

	rec.RecordsWritten.WithLabelValues("json").Add(n)
	written = append(written, jsonPath)
	log.Info(fmt.Sprintf("✅ Saved JSON: %s", jsonPath))

	if sqlitePath := cfg.OutputPath(out.SQLiteFile); sqlitePath != "" {
		if err := export.WriteSQLite(ctx, sqlitePath, result.Products); err != nil {
			return nil, err
		}

		rec.RecordsWritten.WithLabelValues("sqlite").Add(n)
		written = append(written, sqlitePath)
		log.Info(fmt.Sprintf("✅ Saved SQLite: %s", sqlitePath))
	}

	return written, nil
}

func writeManifest(cfg *config.Config, result *pipeline.Result, files []string) error {
	m := metadata.New(len(result.Products), result.CountBySource())

	for _, f := range files {
		if err := m.AddFile(f); err != nil {
			return err
		}
	}

	return m.Write(cfg.OutputPath(manifestFile))
}

func printUsage() {
	fmt.Println(`Catalog - unified clothing catalog builder

Usage:
  catalog [options]

Options:
  -config string
        Path to YAML configuration file (default: $CATALOG_CONFIG, then configs/catalog.yaml)
  -validate
        Validate the configuration and exit
  -help
        Show this help message

Examples:
  catalog
  catalog -config configs/catalog.yaml
  CATALOG_CONFIG=configs/catalog.yaml catalog -validate`)
}

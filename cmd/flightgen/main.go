package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yegors/flightgen/internal/config"
	"github.com/yegors/flightgen/internal/export"
	"github.com/yegors/flightgen/internal/storage/sqlite"
	"github.com/yegors/flightgen/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "flightgen: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	startedAt := time.Now()

	writer := export.NewWriter(cfg, log)
	writer.OnProgress(func(written int64) {
		log.Info("Progress",
			logger.Int64("records_written", written),
			logger.Int64("total_records", cfg.TotalRecords),
		)
	})

	summary, err := writer.Run()
	if err != nil {
		return err
	}

	if cfg.Manifest.Enabled {
		// A manifest failure should not fail the run: the output file is
		// already complete on disk.
		if err := recordRun(cfg, log, startedAt, summary); err != nil {
			log.Warn("Failed to record run manifest", logger.Error(err))
		}
	}

	log.Info("Generation complete",
		logger.Int64("records", summary.Records),
		logger.Float64("size_mb", float64(summary.Bytes)/(1024*1024)),
		logger.Duration("duration", summary.Duration),
		logger.String("output_file", cfg.OutputFile),
	)
	return nil
}

func recordRun(cfg config.Config, log *logger.Logger, startedAt time.Time, summary export.Summary) error {
	db, err := sqlite.Open(cfg.Manifest.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	storage, err := sqlite.NewRunStorage(db, log)
	if err != nil {
		return err
	}

	_, err = storage.StoreRun(&sqlite.RunRecord{
		StartedAt:  startedAt,
		OutputFile: cfg.OutputFile,
		Records:    summary.Records,
		Bytes:      summary.Bytes,
		Duration:   summary.Duration,
		Seed:       summary.Seed,
	})
	return err
}

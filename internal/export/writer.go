package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/yegors/flightgen/internal/config"
	"github.com/yegors/flightgen/internal/flight"
	"github.com/yegors/flightgen/pkg/logger"
)

// Writer streams generated flight records to the configured CSV file. One
// record lives in memory at a time, so record counts in the millions do not
// grow the heap.
type Writer struct {
	cfg      config.Config
	logger   *logger.Logger
	progress ProgressFunc
}

// NewWriter creates a new streaming writer
func NewWriter(cfg config.Config, log *logger.Logger) *Writer {
	return &Writer{
		cfg:    cfg,
		logger: log.Named("export"),
	}
}

// OnProgress attaches an observer called after every flushed batch.
func (w *Writer) OnProgress(fn ProgressFunc) {
	w.progress = fn
}

// Run generates and writes all records, returning counts, output size and
// elapsed time. On an I/O error partial output remains on disk and the
// error reports how many records made it out.
func (w *Writer) Run() (Summary, error) {
	start := time.Now()

	seed := w.cfg.Seed
	if seed == 0 {
		seed = start.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	startDate, endDate := w.cfg.DateWindow()
	gen := flight.NewGenerator(startDate, endDate, rng)

	if dir := filepath.Dir(w.cfg.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(w.cfg.OutputFile)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create output file %s: %w", w.cfg.OutputFile, err)
	}
	defer f.Close()

	bw := bufio.NewWriterSize(f, 64*1024)
	cw := csv.NewWriter(bw)

	w.logger.Info("Starting record generation",
		logger.Int64("total_records", w.cfg.TotalRecords),
		logger.String("output_file", w.cfg.OutputFile),
		logger.String("start_date", w.cfg.StartDate),
		logger.String("end_date", w.cfg.EndDate),
		logger.Int64("seed", seed),
	)

	if err := cw.Write(Header); err != nil {
		return Summary{}, fmt.Errorf("failed to write header: %w", err)
	}

	var written int64
	for id := int64(1); id <= w.cfg.TotalRecords; id++ {
		routeID := 1 + rng.Intn(w.cfg.RouteIDMax)
		rec := gen.Generate(id, routeID)

		if err := cw.Write(encodeRecord(rec)); err != nil {
			return Summary{}, fmt.Errorf("failed to write record %d (%d records written): %w", id, written, err)
		}
		written++

		if written%w.cfg.BatchSize == 0 {
			if err := w.flush(cw, bw, f); err != nil {
				return Summary{}, fmt.Errorf("failed to flush after %d records: %w", written, err)
			}
			if w.progress != nil {
				w.progress(written)
			}
		}
	}

	if err := w.flush(cw, bw, f); err != nil {
		return Summary{}, fmt.Errorf("failed on final flush after %d records: %w", written, err)
	}

	fi, err := f.Stat()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to stat output file: %w", err)
	}

	return Summary{
		Records:  written,
		Bytes:    fi.Size(),
		Seed:     seed,
		Duration: time.Since(start),
	}, nil
}

// flush drains the csv and buffer layers and forces the data to disk.
func (w *Writer) flush(cw *csv.Writer, bw *bufio.Writer, f *os.File) error {
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// encodeRecord serializes one record in the fixed column order.
func encodeRecord(r flight.Record) []string {
	return []string{
		strconv.FormatInt(r.RecordID, 10),
		strconv.Itoa(r.RouteID),
		r.FlightDate.Format(dateLayout),
		r.FlightNumber,
		r.AircraftType,
		strconv.Itoa(r.Passengers),
		strconv.FormatFloat(r.LoadFactor, 'f', 2, 64),
		r.CabinClass,
		strconv.FormatInt(r.TotalCO2Kg, 10),
		strconv.Itoa(r.CO2PerPaxKg),
		r.CreatedAt.Format(timestampLayout),
	}
}

package export

import "time"

// Header is the fixed column order of the output file; it must match the
// target table exactly.
var Header = []string{
	"record_id",
	"route_id",
	"flight_date",
	"flight_number",
	"aircraft_type",
	"passengers",
	"load_factor",
	"cabin_class",
	"total_co2_kg",
	"co2_per_passenger_kg",
	"created_at",
}

// Layouts for date and timestamp columns.
const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Summary describes a completed run.
type Summary struct {
	Records  int64
	Bytes    int64
	Seed     int64
	Duration time.Duration
}

// ProgressFunc is invoked at batch boundaries with the number of records
// written so far. Display is the caller's concern.
type ProgressFunc func(written int64)

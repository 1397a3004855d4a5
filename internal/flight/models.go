package flight

import (
	"strings"
	"time"
)

// Cabin class literals as they appear in the output file.
const (
	CabinEconomy  = "economy"
	CabinBusiness = "business"
	CabinFirst    = "first"
)

// FlightNumberMaxLen caps the flight number at the column width of the
// target table.
const FlightNumberMaxLen = 10

// AircraftTypes is the fixed catalog of ICAO-like type codes records are
// sampled from.
var AircraftTypes = []string{
	"A320", "B737", "A321", "B738", "A319", "B739", "A20N", "B38M", "A21N", "B789",
	"A359", "B77W", "B788", "A333", "A350", "B772", "B77L", "A332", "B763", "A306",
}

// AirlineCodes is the fixed catalog of two-letter airline prefixes.
var AirlineCodes = []string{"AA", "DL", "UA", "BA", "LH", "AF", "EK", "SQ", "QF", "JL"}

// Capacity and emission ranges by body type, before cabin-class scaling.
const (
	narrowPaxMin = 150
	narrowPaxMax = 220
	narrowCO2Min = 80
	narrowCO2Max = 120

	widePaxMin = 250
	widePaxMax = 400
	wideCO2Min = 150
	wideCO2Max = 250
)

// Record is one synthetic flight, shaped exactly like a row of the target
// table.
type Record struct {
	RecordID     int64
	RouteID      int
	FlightDate   time.Time
	FlightNumber string
	AircraftType string
	Passengers   int
	LoadFactor   float64
	CabinClass   string
	TotalCO2Kg   int64
	CO2PerPaxKg  int
	CreatedAt    time.Time
}

// IsNarrowBody classifies a type code by substring marker. The rule is kept
// bit-compatible with existing datasets: some widebody codes (A350, A333,
// A359, A332, A306) match the "A3" marker and land in the narrow ranges.
func IsNarrowBody(aircraftType string) bool {
	return strings.Contains(aircraftType, "A3") || strings.Contains(aircraftType, "B73")
}

package flight

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Generator synthesizes flight records from an explicit random source, so a
// fixed seed reproduces a run exactly.
type Generator struct {
	rng     *rand.Rand
	start   time.Time
	daySpan int // inclusive day offsets beyond start
	now     func() time.Time
}

// NewGenerator creates a generator producing flight dates within the
// inclusive [start, end] window. Callers validate start <= end beforehand.
func NewGenerator(start, end time.Time, rng *rand.Rand) *Generator {
	return &Generator{
		rng:     rng,
		start:   start,
		daySpan: int(end.Sub(start).Hours() / 24),
		now:     time.Now,
	}
}

// Generate builds one record for the given identifiers. Pure in its inputs
// apart from the random source and the wall clock stamping created_at.
func (g *Generator) Generate(recordID int64, routeID int) Record {
	flightDate := g.start.AddDate(0, 0, g.rng.Intn(g.daySpan+1))

	airline := AirlineCodes[g.rng.Intn(len(AirlineCodes))]
	flightNumber := fmt.Sprintf("%s%04d", airline, 100+g.rng.Intn(9900))
	if len(flightNumber) > FlightNumberMaxLen {
		flightNumber = flightNumber[:FlightNumberMaxLen]
	}

	aircraftType := AircraftTypes[g.rng.Intn(len(AircraftTypes))]
	cabinClass := cabinClassForRoll(1 + g.rng.Intn(100))

	var maxPax, baseCO2 int
	if IsNarrowBody(aircraftType) {
		maxPax = narrowPaxMin + g.rng.Intn(narrowPaxMax-narrowPaxMin+1)
		baseCO2 = narrowCO2Min + g.rng.Intn(narrowCO2Max-narrowCO2Min+1)
	} else {
		maxPax = widePaxMin + g.rng.Intn(widePaxMax-widePaxMin+1)
		baseCO2 = wideCO2Min + g.rng.Intn(wideCO2Max-wideCO2Min+1)
	}
	maxPax, baseCO2 = scaleForCabin(cabinClass, maxPax, baseCO2)

	loadFactor := math.Round((60+g.rng.Float64()*35)*100) / 100
	passengers := int(float64(maxPax) * loadFactor / 100)

	return Record{
		RecordID:     recordID,
		RouteID:      routeID,
		FlightDate:   flightDate,
		FlightNumber: flightNumber,
		AircraftType: aircraftType,
		Passengers:   passengers,
		LoadFactor:   loadFactor,
		CabinClass:   cabinClass,
		TotalCO2Kg:   int64(passengers) * int64(baseCO2),
		CO2PerPaxKg:  baseCO2,
		CreatedAt:    g.now(),
	}
}

// cabinClassForRoll maps a 1..100 draw to a cabin class: 84% economy,
// 12% business, 4% first.
func cabinClassForRoll(roll int) string {
	switch {
	case roll < 85:
		return CabinEconomy
	case roll < 97:
		return CabinBusiness
	default:
		return CabinFirst
	}
}

// scaleForCabin applies the cabin-class multipliers to capacity and
// per-passenger emissions, truncating toward zero.
func scaleForCabin(cabinClass string, maxPax, baseCO2 int) (int, int) {
	switch cabinClass {
	case CabinBusiness:
		return int(float64(maxPax) * 0.6), int(float64(baseCO2) * 1.5)
	case CabinFirst:
		return int(float64(maxPax) * 0.3), int(float64(baseCO2) * 2.0)
	default:
		return maxPax, baseCO2
	}
}

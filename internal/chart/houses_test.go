package chart

import (
	"os"
	"testing"

	"github.com/papapumpkin/kundali/internal/ephemeris"
)

func TestNewHouseTable_Rotation(t *testing.T) {
	t.Parallel()

	for asc := Aries; asc <= Pisces; asc++ {
		table := NewHouseTable(asc)
		for i, h := range table {
			if h.Number != i+1 {
				t.Errorf("asc %s: entry %d has number %d", asc, i, h.Number)
			}
			if want := Sign((int(asc) + i) % 12); h.Sign != want {
				t.Errorf("asc %s: house %d sign %s, want %s", asc, h.Number, h.Sign, want)
			}
			if h.Ruler != h.Sign.Ruler() {
				t.Errorf("asc %s: house %d ruler %s", asc, h.Number, h.Ruler)
			}
			if got := table.HouseOf(h.Sign); got != h.Number {
				t.Errorf("asc %s: HouseOf(%s) = %d, want %d", asc, h.Sign, got, h.Number)
			}
		}
	}
}

func TestHouseTable_HouseWraps(t *testing.T) {
	t.Parallel()

	table := NewHouseTable(Leo)
	if got := table.Sign(13); got != Leo {
		t.Errorf("Sign(13) = %s, want Leo", got)
	}
	if got := table.Sign(0); got != Cancer {
		t.Errorf("Sign(0) = %s, want Cancer", got)
	}
	if got := table.Sign(7); got != Aquarius {
		t.Errorf("Sign(7) = %s, want Aquarius", got)
	}
}

func TestPlacements(t *testing.T) {
	t.Parallel()

	fake := newFake()
	fake.errs = map[ephemeris.Body]error{ephemeris.Venus: ephemeris.ErrDataMissing}
	c, err := newTestEngine(fake).Compute(validInput())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	ps, err := c.Placements()
	if err != nil {
		t.Fatalf("Placements: %v", err)
	}
	if len(ps) != len(Planets())-1 {
		t.Fatalf("got %d placements, want %d", len(ps), len(Planets())-1)
	}
	want := map[Body]int{
		Sun:     9,  // Leo from Sagittarius
		Moon:    1,  // Sagittarius
		Mars:    10, // Virgo
		Mercury: 9,
		Jupiter: 12, // Scorpio
		Saturn:  4,  // Pisces
		Rahu:    11, // Libra
		Ketu:    5,  // Aries
	}
	for i, p := range ps {
		if p.Body == Venus {
			t.Error("unavailable Venus was placed")
		}
		if i > 0 && ps[i-1].Body >= p.Body {
			t.Errorf("placements out of canonical order at %d", i)
		}
		if p.House < 1 || p.House > 12 {
			t.Errorf("%s in house %d", p.Body, p.House)
		}
		if p.House != want[p.Body] {
			t.Errorf("%s in house %d, want %d", p.Body, p.House, want[p.Body])
		}
	}
}

// The reference benchmark payload: New Delhi, 1995-08-25 14:30 IST.
func benchmarkInput() BirthInput {
	return BirthInput{
		Year: 1995, Month: 8, Day: 25,
		Hour: 14, Minute: 30,
		Latitude: 28.61, Longitude: 77.20,
		Timezone: 5.5,
		Ayanamsa: ephemeris.Lahiri,
	}
}

func TestScenario_BenchmarkChart(t *testing.T) {
	t.Parallel()

	// Without VSOP87 files the five planets are unavailable; the chart still
	// holds all ten keys.
	meeus := ephemeris.NewMeeus(os.Getenv("KUNDALI_EPHEMERIS_PATH"))
	c, err := NewEngine(meeus).Compute(benchmarkInput())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(c.Positions) != 10 {
		t.Fatalf("got %d positions, want 10", len(c.Positions))
	}
	for _, b := range []Body{Sun, Moon, Rahu, Ketu, Ascendant} {
		if !c.Available(b) {
			t.Errorf("%s unavailable: %v", b, c.Failure(b))
		}
	}
	for _, b := range Keys() {
		p := c.Position(b)
		if !p.Available {
			if c.Failure(b) == nil {
				t.Errorf("%s unavailable without a recorded failure", b)
			}
			continue
		}
		if p.Longitude < 0 || p.Longitude >= 360 {
			t.Errorf("%s longitude %v out of range", b, p.Longitude)
		}
	}
	// Sun in sidereal Leo in late August.
	if got := c.Position(Sun).Sign(); got != Leo {
		t.Errorf("Sun sign = %s, want Leo", got)
	}

	table, err := c.HouseTable()
	if err != nil {
		t.Fatalf("HouseTable: %v", err)
	}
	if len(table) != 12 {
		t.Fatalf("house table has %d entries", len(table))
	}
	asc := c.Position(Ascendant).Sign()
	seen := map[Sign]bool{}
	for i, h := range table {
		if want := asc.Add(i); h.Sign != want {
			t.Errorf("house %d sign %s, want %s", h.Number, h.Sign, want)
		}
		seen[h.Sign] = true
	}
	if len(seen) != 12 {
		t.Errorf("house signs are not a permutation of the zodiac: %v", seen)
	}
	if got := HouseNumber(asc, asc); got != 1 {
		t.Errorf("Ascendant house = %d", got)
	}
}

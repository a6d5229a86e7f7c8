package arudha

import (
	"errors"
	"testing"

	"github.com/papapumpkin/kundali/internal/chart"
	"github.com/papapumpkin/kundali/internal/ephemeris"
)

func newChart(t *testing.T, asc chart.Sign, signs map[chart.Body]chart.Sign) (*chart.Chart, chart.HouseTable) {
	t.Helper()
	c := &chart.Chart{Positions: map[chart.Body]chart.Position{
		chart.Ascendant: chart.NewPosition(float64(asc)*30+15, false),
	}}
	for _, b := range chart.Planets() {
		s, ok := signs[b]
		if !ok {
			c.Positions[b] = chart.Position{}
			continue
		}
		c.Positions[b] = chart.NewPosition(float64(s)*30+5, false)
	}
	table, err := c.HouseTable()
	if err != nil {
		t.Fatalf("HouseTable: %v", err)
	}
	return c, table
}

func TestPadaOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		asc   chart.Sign
		house int
		lord  chart.Body
		at    chart.Sign
		want  chart.Sign
	}{
		{"lord in 5th", chart.Aries, 1, chart.Mars, chart.Leo, chart.Sagittarius},
		{"lord in own house jumps", chart.Aries, 1, chart.Mars, chart.Aries, chart.Taurus},
		{"lord in 7th jumps", chart.Aries, 1, chart.Mars, chart.Libra, chart.Taurus},
		{"landing on 7th jumps", chart.Aries, 1, chart.Mars, chart.Cancer, chart.Scorpio},
		{"tenth house", chart.Cancer, 10, chart.Mars, chart.Pisces, chart.Aquarius},
		{"lord in 12th", chart.Leo, 1, chart.Sun, chart.Cancer, chart.Gemini},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, table := newChart(t, tt.asc, map[chart.Body]chart.Sign{tt.lord: tt.at})
			got, err := PadaOf(table, c, tt.house)
			if err != nil {
				t.Fatalf("PadaOf: %v", err)
			}
			if got != tt.want {
				t.Errorf("PadaOf(house %d) = %s, want %s", tt.house, got, tt.want)
			}
		})
	}
}

func TestPadaOf_NeverOnHouseOrSeventh(t *testing.T) {
	t.Parallel()

	for asc := chart.Aries; asc <= chart.Pisces; asc++ {
		for at := chart.Aries; at <= chart.Pisces; at++ {
			signs := map[chart.Body]chart.Sign{}
			for _, b := range chart.Planets() {
				signs[b] = at
			}
			c, table := newChart(t, asc, signs)
			for house := 1; house <= 12; house++ {
				got, err := PadaOf(table, c, house)
				if err != nil {
					t.Fatalf("PadaOf: %v", err)
				}
				s := table.Sign(house)
				if got == s || got == s.Add(6) {
					t.Errorf("asc %s lords in %s: house %d pada %s falls on %s or its 7th", asc, at, house, got, s)
				}
			}
		}
	}
}

func TestUpapada(t *testing.T) {
	t.Parallel()

	// Aries rising: the 12th is Pisces, ruled by Jupiter.
	c, table := newChart(t, chart.Aries, map[chart.Body]chart.Sign{chart.Jupiter: chart.Taurus})
	ul, err := Upapada(table, c)
	if err != nil {
		t.Fatalf("Upapada: %v", err)
	}
	want := Pada{Label: "UL", House: 12, Sign: chart.Cancer}
	if ul != want {
		t.Errorf("Upapada = %+v, want %+v", ul, want)
	}

	// Jupiter in Gemini lands on Virgo, the 7th from Pisces, and jumps.
	c, table = newChart(t, chart.Aries, map[chart.Body]chart.Sign{chart.Jupiter: chart.Gemini})
	if ul, _ = Upapada(table, c); ul.Sign != chart.Libra {
		t.Errorf("Upapada sign = %s, want Libra", ul.Sign)
	}
}

func TestAll_SharesRoutineWithUpapada(t *testing.T) {
	t.Parallel()

	signs := map[chart.Body]chart.Sign{
		chart.Sun: chart.Leo, chart.Moon: chart.Scorpio, chart.Mars: chart.Gemini,
		chart.Mercury: chart.Virgo, chart.Jupiter: chart.Aquarius, chart.Venus: chart.Cancer,
		chart.Saturn: chart.Pisces, chart.Rahu: chart.Libra, chart.Ketu: chart.Aries,
	}
	c, table := newChart(t, chart.Sagittarius, signs)

	all, err := All(table, c)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 12 {
		t.Fatalf("got %d padas, want 12", len(all))
	}
	for i, p := range all {
		if p.House != i+1 {
			t.Errorf("entry %d has house %d", i, p.House)
		}
	}
	if all[0].Label != "A1" || all[11].Label != "A12" {
		t.Errorf("labels %q..%q", all[0].Label, all[11].Label)
	}
	ul, err := Upapada(table, c)
	if err != nil {
		t.Fatalf("Upapada: %v", err)
	}
	if ul.Sign != all[11].Sign {
		t.Errorf("UL %s differs from A12 %s", ul.Sign, all[11].Sign)
	}
}

func TestAll_UnavailableLord(t *testing.T) {
	t.Parallel()

	// Venus rules the 2nd (Taurus) and 7th (Libra) for Aries rising.
	signs := map[chart.Body]chart.Sign{}
	for _, b := range chart.Planets() {
		if b != chart.Venus {
			signs[b] = chart.Gemini
		}
	}
	c, table := newChart(t, chart.Aries, signs)

	all, err := All(table, c)
	if !errors.Is(err, ephemeris.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("got %d padas, want 10", len(all))
	}
	for _, p := range all {
		if p.House == 2 || p.House == 7 {
			t.Errorf("house %d computed without its lord", p.House)
		}
	}
}

func TestPadaOf_InvalidHouse(t *testing.T) {
	t.Parallel()

	c, table := newChart(t, chart.Aries, nil)
	for _, h := range []int{0, 13, -1} {
		if _, err := PadaOf(table, c, h); !errors.Is(err, ErrInvalidHouse) {
			t.Errorf("PadaOf(%d) = %v, want ErrInvalidHouse", h, err)
		}
	}
}

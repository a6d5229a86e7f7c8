package match

import (
	"fmt"
	"slices"

	"github.com/papapumpkin/kundali/internal/chart"
)

// manglikHouses are the houses from a reference point in which Mars causes
// Mangal dosha.
var manglikHouses = []int{1, 4, 7, 8, 12}

// Manglik is the Mars-affliction result for one chart.
type Manglik struct {
	IsManglik bool
	// Reasons names each triggering reference point, e.g. "Ascendant (House 8)".
	Reasons []string
	// Degraded is set when Mars or a reference point was unavailable, so
	// some checks could not run.
	Degraded bool
}

// CheckManglik tests the house of Mars counted from the Ascendant and from
// the Moon. Each reference that places Mars in 1, 4, 7, 8 or 12 adds a reason.
func CheckManglik(c *chart.Chart) Manglik {
	var m Manglik
	mars := c.Position(chart.Mars)
	if !mars.Available {
		m.Degraded = true
		return m
	}
	for _, ref := range []chart.Body{chart.Ascendant, chart.Moon} {
		p := c.Position(ref)
		if !p.Available {
			m.Degraded = true
			continue
		}
		h := chart.HouseNumber(mars.Sign(), p.Sign())
		if slices.Contains(manglikHouses, h) {
			m.Reasons = append(m.Reasons, fmt.Sprintf("%s (House %d)", ref, h))
		}
	}
	m.IsManglik = len(m.Reasons) > 0
	return m
}

// Verdict combines the two manglik results.
type Verdict int

const (
	// Good: neither chart is manglik.
	Good Verdict = iota
	// Cancellation: both are manglik and the doshas cancel.
	Cancellation
	// Clash: exactly one is manglik.
	Clash
)

var verdictText = map[Verdict][2]string{
	Good:         {"Good", "Neither has Mars dosha."},
	Cancellation: {"Cancellation", "Both are manglik; the doshas cancel out."},
	Clash:        {"Clash", "Only one is manglik; potential for conflict."},
}

func (v Verdict) String() string {
	return verdictText[v][0]
}

// Description returns a one-line explanation of the verdict.
func (v Verdict) Description() string {
	return verdictText[v][1]
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Combine returns the verdict for a pair of results.
func Combine(a, b Manglik) Verdict {
	switch {
	case a.IsManglik && b.IsManglik:
		return Cancellation
	case !a.IsManglik && !b.IsManglik:
		return Good
	default:
		return Clash
	}
}

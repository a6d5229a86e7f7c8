package chart

import "math"

// Position is one body's record in a chart. Sign, degree and nakshatra are
// always derived from Longitude and cannot drift from it.
//
// The zero Position is unavailable: Available is false and Longitude carries
// no meaning. An unavailable record is never a real 0deg Aries placement.
type Position struct {
	Longitude  float64 // absolute sidereal longitude, [0, 360)
	Retrograde bool
	Available  bool
}

// NewPosition builds an available record, normalizing longitude to [0, 360).
func NewPosition(longitude float64, retrograde bool) Position {
	return Position{
		Longitude:  normalizeLongitude(longitude),
		Retrograde: retrograde,
		Available:  true,
	}
}

// Sign returns floor(longitude / 30).
func (p Position) Sign() Sign {
	return SignOf(p.Longitude)
}

// Degree returns the degree within the sign, [0, 30).
func (p Position) Degree() float64 {
	return math.Mod(normalizeLongitude(p.Longitude), 30)
}

// Nakshatra returns the lunar mansion and pada, or ok=false when the record
// is unavailable.
func (p Position) Nakshatra() (n Nakshatra, pada int, ok bool) {
	if !p.Available {
		return 0, 0, false
	}
	n, pada = NakshatraOf(p.Longitude)
	return n, pada, true
}

func normalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	if lon >= 360 {
		return 0
	}
	return lon
}

// Package ephemeris adapts the Meeus astronomical algorithms to the sidereal
// quantities a Vedic chart needs: Julian Day conversion, geocentric sidereal
// longitude and speed per body, and the ascendant with house cusps.
//
// The sidereal mode (ayanamsa) is an argument of every query rather than
// process-wide state, so concurrent computations with different modes never
// interfere. Ephemeris data files are loaded once when an adapter is
// constructed and only read afterwards.
package ephemeris

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentinel errors. A failed body query always matches ErrUnavailable and,
// where known, one of the more specific causes.
var (
	// ErrUnavailable marks a body whose position could not be computed.
	ErrUnavailable = errors.New("body unavailable")
	// ErrDataMissing indicates a required ephemeris data file was not loaded.
	ErrDataMissing = errors.New("ephemeris data missing")
	// ErrOutOfRange indicates the date lies outside the supported span.
	ErrOutOfRange = errors.New("date outside supported range")
	// ErrPolarLatitude indicates a house system has no solution at the latitude.
	ErrPolarLatitude = errors.New("house system undefined at polar latitude")
	// ErrUnknownBody indicates a body identifier the adapter does not serve.
	ErrUnknownBody = errors.New("unknown body")
	// ErrUnknownAyanamsa indicates an unset or unrecognized sidereal mode.
	ErrUnknownAyanamsa = errors.New("unknown ayanamsa")
)

// UnavailableError reports which body (or the ascendant) failed and why.
type UnavailableError struct {
	Body Body
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUnavailable, e.Body, e.Err)
}

// Unwrap exposes both ErrUnavailable and the underlying cause to errors.Is.
func (e *UnavailableError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

func unavailable(b Body, err error) error {
	return &UnavailableError{Body: b, Err: err}
}

// JulianDay is a Julian Day number on the UT time scale.
type JulianDay float64

// Body identifies a body the adapter can position.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	MeanNode
	// AscendantPoint is not a body; it labels ascendant failures.
	AscendantPoint
)

var bodyNames = [...]string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "MeanNode", "Ascendant"}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// Position is a sidereal geocentric ecliptic longitude with its daily motion.
type Position struct {
	Longitude float64 // degrees, [0, 360)
	Speed     float64 // degrees per day
}

// Retrograde reports apparent backward motion. Only the sign of the speed
// matters.
func (p Position) Retrograde() bool {
	return p.Speed < 0
}

// HouseSystem selects how intermediate house cusps are divided.
type HouseSystem int

const (
	Placidus HouseSystem = iota
	Equal
	WholeSign
)

var houseSystemNames = map[HouseSystem]string{
	Placidus:  "placidus",
	Equal:     "equal",
	WholeSign: "whole_sign",
}

func (h HouseSystem) String() string {
	if s, ok := houseSystemNames[h]; ok {
		return s
	}
	return fmt.Sprintf("HouseSystem(%d)", int(h))
}

// ParseHouseSystem converts a config value such as "placidus" or "whole_sign".
func ParseHouseSystem(s string) (HouseSystem, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for h, name := range houseSystemNames {
		if name == norm {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown house system %q", s)
}

// normalize reduces an angle in degrees to [0, 360).
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		return 0
	}
	return deg
}

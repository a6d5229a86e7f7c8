// Package chart builds the base (D1) sidereal chart from birth data: one
// position record per body plus the Ascendant, house placements relative to
// the Ascendant sign, and the twelve-house sign/ruler table.
//
// Derived calculations (divisional charts, aspects, arudha padas, karakas,
// compatibility) live in sibling packages and consume *Chart.
package chart

import (
	"fmt"
	"slices"
	"strings"

	"github.com/papapumpkin/kundali/internal/ephemeris"
)

// Body is a chart key: the nine grahas and the Ascendant.
type Body int

// Canonical enumeration. Derived outputs are ordered by it.
const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
	Ascendant
)

var bodyNames = [...]string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu", "Ascendant"}

var keys = [...]Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu, Ascendant}

// Keys returns every key of a base chart in canonical order. The slice is a
// fresh copy.
func Keys() []Body {
	return slices.Clone(keys[:])
}

// Planets returns the nine grahas, every key except the Ascendant.
func Planets() []Body {
	return slices.Clone(keys[:Ascendant])
}

// queried are the bodies read from the ephemeris; Ketu and the Ascendant are
// derived separately.
var queried = []struct {
	body Body
	eph  ephemeris.Body
}{
	{Sun, ephemeris.Sun},
	{Moon, ephemeris.Moon},
	{Mars, ephemeris.Mars},
	{Mercury, ephemeris.Mercury},
	{Jupiter, ephemeris.Jupiter},
	{Venus, ephemeris.Venus},
	{Saturn, ephemeris.Saturn},
	{Rahu, ephemeris.MeanNode},
}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// ParseBody resolves a body by name, case-insensitively.
func ParseBody(s string) (Body, error) {
	for i, name := range bodyNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("unknown body %q", s)
}

// MarshalText implements encoding.TextMarshaler so bodies can key maps.
func (b Body) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Body) UnmarshalText(text []byte) error {
	v, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

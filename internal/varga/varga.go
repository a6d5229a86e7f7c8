// Package varga derives divisional (varga) chart signs from absolute sidereal
// longitude. Each division splits every sign into equal parts and maps each
// part to a sign by a classical starting rule.
package varga

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/papapumpkin/kundali/internal/chart"
)

// ErrUnsupportedDivision is returned for a division the package does not
// compute.
var ErrUnsupportedDivision = errors.New("unsupported division")

// Division names a divisional chart by its number of parts per sign.
type Division int

const (
	D1  Division = 1  // Rashi
	D2  Division = 2  // Hora
	D3  Division = 3  // Drekkana
	D7  Division = 7  // Saptamsa
	D9  Division = 9  // Navamsa
	D10 Division = 10 // Dasamsa
	D12 Division = 12 // Dwadasamsa
)

// Divisions returns the supported divisions in ascending order.
func Divisions() []Division {
	return []Division{D1, D2, D3, D7, D9, D10, D12}
}

var divisionNames = map[Division]string{
	D1:  "Rashi",
	D2:  "Hora",
	D3:  "Drekkana",
	D7:  "Saptamsa",
	D9:  "Navamsa",
	D10: "Dasamsa",
	D12: "Dwadasamsa",
}

func (d Division) String() string {
	return fmt.Sprintf("D%d", int(d))
}

// Name returns the classical name, e.g. "Navamsa" for D9.
func (d Division) Name() string {
	if n, ok := divisionNames[d]; ok {
		return n
	}
	return d.String()
}

// ParseDivision accepts "D9", "d9" or "9".
func ParseDivision(s string) (Division, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "D"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDivision, s)
	}
	d := Division(n)
	if _, ok := divisionNames[d]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDivision, s)
	}
	return d, nil
}

// Navamsa returns the D9 sign of an absolute longitude. The zodiac splits
// into 108 parts of 3deg20'; a movable sign starts its cycle from itself, a
// fixed sign from its 9th and a dual sign from its 5th, which makes the result
// equal to the part index mod 12.
func Navamsa(longitude float64) chart.Sign {
	sign, part := split(longitude, 9)
	var start chart.Sign
	switch sign.Modality() {
	case chart.Movable:
		start = sign
	case chart.Fixed:
		start = sign.Add(8)
	default:
		start = sign.Add(4)
	}
	return start.Add(part)
}

// Compute returns the sign longitude falls in under division d.
func Compute(d Division, longitude float64) (chart.Sign, error) {
	switch d {
	case D1:
		return chart.SignOf(longitude), nil
	case D2:
		return hora(longitude), nil
	case D3:
		sign, part := split(longitude, 3)
		return sign.Add(4 * part), nil
	case D7:
		sign, part := split(longitude, 7)
		return oddEvenStart(sign, 6).Add(part), nil
	case D9:
		return Navamsa(longitude), nil
	case D10:
		sign, part := split(longitude, 10)
		return oddEvenStart(sign, 8).Add(part), nil
	case D12:
		sign, part := split(longitude, 12)
		return sign.Add(part), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedDivision, d)
	}
}

// Signs maps every available chart key to its sign under d.
func Signs(c *chart.Chart, d Division) (map[chart.Body]chart.Sign, error) {
	keys := chart.Keys()
	out := make(map[chart.Body]chart.Sign, len(keys))
	for _, b := range keys {
		p := c.Position(b)
		if !p.Available {
			continue
		}
		s, err := Compute(d, p.Longitude)
		if err != nil {
			return nil, err
		}
		out[b] = s
	}
	return out, nil
}

// hora follows Parashara: odd signs give Leo then Cancer, even signs Cancer
// then Leo.
func hora(longitude float64) chart.Sign {
	sign, part := split(longitude, 2)
	if sign.Odd() == (part == 0) {
		return chart.Leo
	}
	return chart.Cancer
}

// oddEvenStart returns sign for odd signs and the sign offset places ahead
// for even signs.
func oddEvenStart(sign chart.Sign, offset int) chart.Sign {
	if sign.Odd() {
		return sign
	}
	return sign.Add(offset)
}

// split returns the sign of longitude and the index of its part when the sign
// is divided into n equal parts.
func split(longitude float64, n int) (chart.Sign, int) {
	pos := chart.NewPosition(longitude, false)
	part := int(math.Floor(pos.Degree() * float64(n) / 30))
	if part >= n {
		part = n - 1
	}
	return pos.Sign(), part
}

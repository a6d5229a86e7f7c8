package chart

import (
	"fmt"
	"math"
)

// Sign is a sidereal zodiac sign, Aries = 0 through Pisces = 11.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Traditional single lordship; Scorpio and Aquarius keep Mars and Saturn.
var signRulers = [12]Body{Mars, Venus, Mercury, Moon, Sun, Mercury, Venus, Mars, Jupiter, Saturn, Saturn, Jupiter}

func (s Sign) String() string {
	if s < 0 || s > Pisces {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Ruler returns the sign's lord.
func (s Sign) Ruler() Body {
	return signRulers[s.norm()]
}

// Modality is the sign's quality, which fixes where its navamsa cycle begins.
type Modality int

const (
	Movable Modality = iota // cardinal
	Fixed
	Dual // mutable
)

func (m Modality) String() string {
	switch m {
	case Movable:
		return "movable"
	case Fixed:
		return "fixed"
	default:
		return "dual"
	}
}

// Modality returns movable for Aries, fixed for Taurus, dual for Gemini, and
// so on around the zodiac.
func (s Sign) Modality() Modality {
	return Modality(s.norm() % 3)
}

// Odd reports whether s is an odd sign (Aries, Gemini, ...), counting Aries
// as the first.
func (s Sign) Odd() bool {
	return s.norm()%2 == 0
}

// Add returns the sign n places forward (negative n counts backward).
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)+n)%12 + 12) % 12)
}

// CountTo returns the inclusive count from s to t: 1 when equal, 7 when
// opposite, 12 for the sign just before s.
func (s Sign) CountTo(t Sign) int {
	return HouseNumber(t, s)
}

func (s Sign) norm() Sign {
	return Sign((int(s)%12 + 12) % 12)
}

// SignOf returns the sign containing an absolute longitude.
func SignOf(longitude float64) Sign {
	return Sign(int(math.Floor(normalizeLongitude(longitude)/30)) % 12)
}

// HouseNumber places a sign relative to the ascendant sign:
// ((sign - asc) mod 12) + 1, always within 1..12.
func HouseNumber(sign, asc Sign) int {
	h := (int(sign)-int(asc))%12 + 1
	if h <= 0 {
		h += 12
	}
	return h
}

package chart

import (
	"fmt"
	"math"
)

// NakshatraSpan is the width of one lunar mansion in degrees (13deg20').
const NakshatraSpan = 360.0 / 27

// Nakshatra is one of the 27 lunar mansions, Ashwini = 0.
type Nakshatra int

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// Vimshottari sequence of mansion lords, repeating every nine mansions.
var nakshatraLords = [9]Body{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

func (n Nakshatra) String() string {
	if n < 0 || int(n) >= len(nakshatraNames) {
		return fmt.Sprintf("Nakshatra(%d)", int(n))
	}
	return nakshatraNames[n]
}

// Lord returns the mansion's Vimshottari lord.
func (n Nakshatra) Lord() Body {
	return nakshatraLords[int(n)%9]
}

// NakshatraOf returns the mansion and its pada (quarter, 1..4) for an
// absolute longitude.
func NakshatraOf(longitude float64) (Nakshatra, int) {
	lon := normalizeLongitude(longitude)
	n := int(math.Floor(lon*3/40)) % 27
	pada := int(math.Floor(lon*3/10))%4 + 1
	return Nakshatra(n), pada
}

package chart

import (
	"errors"
	"math"
	"time"

	"github.com/papapumpkin/kundali/internal/ephemeris"
)

// BirthInput holds everything needed to cast a chart. Every field is
// required; the core applies no defaults.
type BirthInput struct {
	Year      int
	Month     int
	Day       int
	Hour      int // local civil time
	Minute    int
	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive
	Timezone  float64 // hours east of UTC, fractional allowed
	Ayanamsa  ephemeris.Ayanamsa
}

// Validate rejects out-of-range fields before any ephemeris call. All
// violations are reported together, each as a *ValidationError.
func (in BirthInput) Validate() error {
	var errs []error
	check := func(ok bool, field string, value any, reason string) {
		if !ok {
			errs = append(errs, &ValidationError{Field: field, Value: value, Reason: reason})
		}
	}

	check(in.Month >= 1 && in.Month <= 12, "month", in.Month, "must be 1..12")
	if in.Month >= 1 && in.Month <= 12 {
		days := daysIn(in.Year, in.Month)
		check(in.Day >= 1 && in.Day <= days, "day", in.Day, "must be within the month")
	}
	check(in.Hour >= 0 && in.Hour <= 23, "hour", in.Hour, "must be 0..23")
	check(in.Minute >= 0 && in.Minute <= 59, "minute", in.Minute, "must be 0..59")
	check(inRange(in.Latitude, -90, 90), "latitude", in.Latitude, "must be -90..90")
	check(inRange(in.Longitude, -180, 180), "longitude", in.Longitude, "must be -180..180")
	check(inRange(in.Timezone, -14, 14), "timezone", in.Timezone, "must be -14..14 hours")
	check(in.Ayanamsa.Valid(), "ayanamsa", in.Ayanamsa, "must be a supported sidereal mode")

	return errors.Join(errs...)
}

// CivilTime returns the birth moment in the ephemeris package's terms.
func (in BirthInput) CivilTime() ephemeris.CivilTime {
	return ephemeris.CivilTime{
		Year:     in.Year,
		Month:    in.Month,
		Day:      in.Day,
		Hour:     in.Hour,
		Minute:   in.Minute,
		Timezone: in.Timezone,
	}
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}

package ephemeris

import (
	"github.com/soniakeys/meeus/v3/deltat"
	"github.com/soniakeys/meeus/v3/julian"
)

// Supported span of Julian Days, roughly the years -3000 to +3000. The lunar
// and VSOP87 series lose accuracy well beyond it.
const (
	MinJulianDay JulianDay = 625000.5
	MaxJulianDay JulianDay = 2816787.5
)

// CivilTime is a local wall-clock instant with its UTC offset in hours.
type CivilTime struct {
	Year, Month, Day int
	Hour, Minute     int
	Timezone         float64
}

// ToJulianDay converts local civil time to a UT Julian Day. The UT decimal
// hour is hour + minute/60 - timezone; a negative or >24 result rolls into the
// neighbouring day.
func ToJulianDay(c CivilTime) JulianDay {
	ut := float64(c.Hour) + float64(c.Minute)/60 - c.Timezone
	return JulianDay(julian.CalendarGregorianToJD(c.Year, c.Month, float64(c.Day)+ut/24))
}

// InRange reports whether jd lies in the supported span.
func (jd JulianDay) InRange() bool {
	return jd >= MinJulianDay && jd <= MaxJulianDay
}

// TT converts a UT Julian Day to Terrestrial (ephemeris) time.
func (jd JulianDay) TT() float64 {
	return float64(jd) + deltaT(jd)/86400
}

func decimalYear(jd JulianDay) float64 {
	return 2000 + (float64(jd)-2451545.0)/365.25
}

// Interp10A tabulates 1620 to 2010 but rounds the day of year up, so the
// last full year it is safe for is 2008. Later dates continue from 2009.0.
const (
	tableFirstYear = 1620
	tableLastYear  = 2008
)

// deltaT returns TT-UT in seconds: tabulated values where Meeus gives them,
// his polynomials elsewhere. After the table the 2000+ polynomial is shifted
// to continue from the last tabulated value.
func deltaT(jd JulianDay) float64 {
	year, _, _ := julian.JDToCalendar(float64(jd))
	switch {
	case year >= tableFirstYear && year <= tableLastYear:
		return deltat.Interp10A(float64(jd)).Sec()
	case year > tableLastYear:
		end := julian.CalendarGregorianToJD(tableLastYear+1, 1, 1)
		drift := deltat.PolyAfter2000(decimalYear(jd)) - deltat.PolyAfter2000(decimalYear(JulianDay(end)))
		return (deltat.Interp10A(end) + drift).Sec()
	case year >= 948:
		return deltat.Poly948to1600(decimalYear(jd)).Sec()
	default:
		return deltat.PolyBefore948(decimalYear(jd)).Sec()
	}
}

package ephemeris

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solar"
)

// speedStep is the half-width, in days, of the central difference used for
// daily motion.
const speedStep = 1.0 / 24

// aberration of the Sun in degrees (20.4898" at 1 AU).
const solarAberration = 20.4898 / 3600

// lightTimeDays converts a distance in AU to light travel time in days.
const lightTimeDays = 0.0057755183

var vsopPlanets = []struct {
	body  Body
	index int
}{
	{Mercury, pp.Mercury},
	{Venus, pp.Venus},
	{Mars, pp.Mars},
	{Jupiter, pp.Jupiter},
	{Saturn, pp.Saturn},
}

// Meeus positions bodies with the algorithms of Jean Meeus: the Sun and Moon
// from analytic series, the mean lunar node from its polynomial, and the
// planets from VSOP87B data files. It is safe for concurrent use.
type Meeus struct {
	dataDir string
	earth   *pp.V87Planet
	planets map[Body]*pp.V87Planet
	missing map[Body]error
}

// NewMeeus loads the VSOP87B files found in dataDir. Missing or unreadable
// files do not fail construction; the affected planets report ErrDataMissing
// on every query and through Check.
func NewMeeus(dataDir string) *Meeus {
	m := &Meeus{
		dataDir: dataDir,
		planets: make(map[Body]*pp.V87Planet, len(vsopPlanets)),
		missing: make(map[Body]error),
	}

	earth, earthErr := loadVSOP(pp.Earth, dataDir)
	m.earth = earth
	for _, p := range vsopPlanets {
		if earthErr != nil {
			m.missing[p.body] = earthErr
			continue
		}
		planet, err := loadVSOP(p.index, dataDir)
		if err != nil {
			m.missing[p.body] = err
			continue
		}
		m.planets[p.body] = planet
	}
	return m
}

func loadVSOP(index int, dir string) (*pp.V87Planet, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: no ephemeris path configured", ErrDataMissing)
	}
	p, err := pp.LoadPlanetPath(index, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataMissing, err)
	}
	return p, nil
}

// DataDir returns the directory the VSOP87 files were loaded from.
func (m *Meeus) DataDir() string {
	return m.dataDir
}

// Check reports every body whose data files could not be loaded.
func (m *Meeus) Check() error {
	var errs []error
	for _, p := range vsopPlanets {
		if err, ok := m.missing[p.body]; ok {
			errs = append(errs, unavailable(p.body, err))
		}
	}
	return errors.Join(errs...)
}

// JulianDay converts local civil time to a UT Julian Day.
func (m *Meeus) JulianDay(c CivilTime) JulianDay {
	return ToJulianDay(c)
}

// Position returns the sidereal geocentric longitude of body and its daily
// motion under the given ayanamsa.
func (m *Meeus) Position(jd JulianDay, body Body, mode Ayanamsa) (Position, error) {
	if !jd.InRange() {
		return Position{}, unavailable(body, fmt.Errorf("%w: jd %.1f", ErrOutOfRange, float64(jd)))
	}
	jde := jd.TT()

	lon, err := m.sidereal(body, jde, mode)
	if err != nil {
		return Position{}, unavailable(body, err)
	}
	before, err := m.sidereal(body, jde-speedStep, mode)
	if err != nil {
		return Position{}, unavailable(body, err)
	}
	after, err := m.sidereal(body, jde+speedStep, mode)
	if err != nil {
		return Position{}, unavailable(body, err)
	}

	return Position{
		Longitude: lon,
		Speed:     angleDiff(after, before) / (2 * speedStep),
	}, nil
}

func (m *Meeus) sidereal(body Body, jde float64, mode Ayanamsa) (float64, error) {
	ayan, err := AyanamsaAt(mode, jde)
	if err != nil {
		return 0, err
	}
	lon, err := m.tropical(body, jde)
	if err != nil {
		return 0, err
	}
	return normalize(lon - ayan), nil
}

// tropical returns the geocentric longitude referred to the mean equinox of
// date, without nutation.
func (m *Meeus) tropical(body Body, jde float64) (float64, error) {
	switch body {
	case Sun:
		s, _ := solar.True(base.J2000Century(jde))
		return normalize(s.Deg() - solarAberration), nil
	case Moon:
		lon, _, _ := moonposition.Position(jde)
		return normalize(lon.Deg()), nil
	case MeanNode:
		return normalize(moonposition.Node(jde).Deg()), nil
	case Mercury, Venus, Mars, Jupiter, Saturn:
		if err, ok := m.missing[body]; ok {
			return 0, err
		}
		return m.geocentric(m.planets[body], jde), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownBody, body)
	}
}

// geocentric converts heliocentric VSOP87 coordinates of a planet to a
// geocentric longitude, correcting once for light time.
func (m *Meeus) geocentric(p *pp.V87Planet, jde float64) float64 {
	l0, b0, r0 := m.earth.Position(jde)
	x0, y0, z0 := rect(l0.Rad(), b0.Rad(), r0)

	var lon, tau float64
	for range 2 {
		l, b, r := p.Position(jde - tau)
		x, y, z := rect(l.Rad(), b.Rad(), r)
		dx, dy, dz := x-x0, y-y0, z-z0
		tau = lightTimeDays * math.Sqrt(dx*dx+dy*dy+dz*dz)
		lon = math.Atan2(dy, dx)
	}
	return normalize(lon * 180 / math.Pi)
}

func rect(l, b, r float64) (x, y, z float64) {
	sl, cl := math.Sincos(l)
	sb, cb := math.Sincos(b)
	return r * cb * cl, r * cb * sl, r * sb
}

// angleDiff returns a-b reduced to (-180, 180].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

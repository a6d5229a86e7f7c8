package ephemeris

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
)

const rad = math.Pi / 180

// Cusps holds sidereal house cusps in degrees. Houses[i] is the cusp of
// house i+1, so Houses[0] equals Ascendant.
type Cusps struct {
	Ascendant float64
	MC        float64
	Houses    [12]float64
}

// Ascendant returns the sidereal longitude of the rising point. The rising
// point is the same in every house system; sys is only checked for validity.
func (m *Meeus) Ascendant(jd JulianDay, lat, lon float64, sys HouseSystem, mode Ayanamsa) (float64, error) {
	if _, ok := houseSystemNames[sys]; !ok {
		return 0, unavailable(AscendantPoint, fmt.Errorf("unknown house system %d", int(sys)))
	}
	f, err := m.frame(jd, lat, lon, mode)
	if err != nil {
		return 0, err
	}
	return normalize(ascendant(f.ramc, f.eps, f.phi)/rad - f.shift), nil
}

// Houses returns the ascendant, midheaven and twelve cusps for sys. Placidus
// has no solution inside the polar circles and returns ErrPolarLatitude there.
func (m *Meeus) Houses(jd JulianDay, lat, lon float64, sys HouseSystem, mode Ayanamsa) (Cusps, error) {
	f, err := m.frame(jd, lat, lon, mode)
	if err != nil {
		return Cusps{}, err
	}

	c := Cusps{
		Ascendant: normalize(ascendant(f.ramc, f.eps, f.phi)/rad - f.shift),
		MC:        normalize(midheaven(f.ramc, f.eps)/rad - f.shift),
	}

	switch sys {
	case Placidus:
		trop, err := placidus(f.ramc, f.eps, f.phi)
		if err != nil {
			return Cusps{}, unavailable(AscendantPoint, err)
		}
		for i, v := range trop {
			c.Houses[i] = normalize(v/rad - f.shift)
		}
	case Equal:
		for i := range c.Houses {
			c.Houses[i] = normalize(c.Ascendant + 30*float64(i))
		}
	case WholeSign:
		start := math.Floor(c.Ascendant/30) * 30
		for i := range c.Houses {
			c.Houses[i] = normalize(start + 30*float64(i))
		}
	default:
		return Cusps{}, unavailable(AscendantPoint, fmt.Errorf("unknown house system %d", int(sys)))
	}
	return c, nil
}

// frame collects the quantities every house computation shares. Angles are
// in radians except shift, which is the degrees to subtract from a tropical
// apparent longitude to make it sidereal.
type frame struct {
	ramc  float64
	eps   float64
	phi   float64
	shift float64
}

func (m *Meeus) frame(jd JulianDay, lat, lon float64, mode Ayanamsa) (frame, error) {
	if !jd.InRange() {
		return frame{}, unavailable(AscendantPoint, fmt.Errorf("%w: jd %.1f", ErrOutOfRange, float64(jd)))
	}
	jde := jd.TT()
	ayan, err := AyanamsaAt(mode, jde)
	if err != nil {
		return frame{}, unavailable(AscendantPoint, err)
	}

	dpsi, deps := nutation.Nutation(jde)
	eps := nutation.MeanObliquity(jde).Rad() + deps.Rad()
	// Apparent sidereal time is in seconds of time; 240 s per degree.
	lst := normalize(float64(sidereal.Apparent(float64(jd)))/240 + lon)

	return frame{
		ramc:  lst * rad,
		eps:   eps,
		phi:   lat * rad,
		shift: dpsi.Deg() + ayan,
	}, nil
}

func ascendant(ramc, eps, phi float64) float64 {
	return math.Atan2(math.Cos(ramc), -(math.Sin(ramc)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)))
}

func midheaven(ramc, eps float64) float64 {
	return math.Atan2(math.Sin(ramc), math.Cos(ramc)*math.Cos(eps))
}

// eclipticOf returns the longitude of the ecliptic point with right
// ascension ra.
func eclipticOf(ra, eps float64) float64 {
	return math.Atan2(math.Sin(ra), math.Cos(ra)*math.Cos(eps))
}

// placidus returns tropical cusps in radians, trisecting the diurnal and
// nocturnal semi-arcs of each cusp's own ecliptic point by iteration.
func placidus(ramc, eps, phi float64) ([12]float64, error) {
	var out [12]float64
	asc := ascendant(ramc, eps, phi)
	mc := midheaven(ramc, eps)

	type quadrant struct {
		house int
		frac  float64
		upper bool
	}
	for _, s := range []quadrant{{11, 1.0 / 3, true}, {12, 2.0 / 3, true}, {2, 2.0 / 3, false}, {3, 1.0 / 3, false}} {
		ra := ramc + s.frac*math.Pi/2
		if !s.upper {
			ra = ramc + math.Pi - s.frac*math.Pi/2
		}
		for range 50 {
			dec := math.Asin(math.Sin(eps) * math.Sin(eclipticOf(ra, eps)))
			x := math.Tan(phi) * math.Tan(dec)
			if math.Abs(x) >= 1 {
				return out, fmt.Errorf("%w: %.2f", ErrPolarLatitude, phi/rad)
			}
			ad := math.Asin(x)
			next := ramc + s.frac*(math.Pi/2+ad)
			if !s.upper {
				next = ramc + math.Pi - s.frac*(math.Pi/2-ad)
			}
			done := math.Abs(next-ra) < 1e-12
			ra = next
			if done {
				break
			}
		}
		cusp := eclipticOf(ra, eps)
		out[s.house-1] = cusp
		out[(s.house+5)%12] = cusp + math.Pi
	}

	out[0] = asc
	out[6] = asc + math.Pi
	out[9] = mc
	out[3] = mc + math.Pi
	return out, nil
}

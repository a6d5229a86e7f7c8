// Package match scores the compatibility of two charts: the Mars-affliction
// (manglik) check and the eight-factor Ashta Koota score out of 36.
package match

import "github.com/papapumpkin/kundali/internal/chart"

// Factor names, in scoring order.
const (
	Varna   = "Varna"
	Vashya  = "Vashya"
	Tara    = "Tara"
	Yoni    = "Yoni"
	Maitri  = "Maitri"
	Gana    = "Gana"
	Bhakoot = "Bhakoot"
	Nadi    = "Nadi"
)

// MaxScore is the sum of every factor's maximum.
const MaxScore = 36

// DegradedScore is the score of a factor whose inputs are unavailable. A
// missing Moon never earns points it cannot be checked for.
const DegradedScore = 0

// Factor is one koota sub-score.
type Factor struct {
	Name     string
	Score    float64
	Max      float64
	Degraded bool
}

// moon holds the lunar inputs of one chart.
type moon struct {
	sign int
	nak  int
}

// Deva-group signs for Maitri: Aries, Cancer, Leo, Scorpio, Sagittarius,
// Pisces. The rest are asura.
var devaSigns = map[int]bool{0: true, 3: true, 4: true, 7: true, 8: true, 11: true}

var kootas = []struct {
	name  string
	max   float64
	score func(a, b moon) float64
}{
	{Varna, 1, func(a, b moon) float64 {
		return pick(a.sign%4 == b.sign%4, 1, 0.5)
	}},
	{Vashya, 2, func(a, b moon) float64 {
		d := absInt(a.sign - b.sign)
		return pick(d == 6 || d == 8, 1, 2)
	}},
	// Tara counts from the first chart's nakshatra to the second's and is
	// the one direction-dependent factor.
	{Tara, 3, func(a, b moon) float64 {
		return pick(mod(b.nak-a.nak, 9)%2 == 0, 3, 1.5)
	}},
	{Yoni, 4, func(a, b moon) float64 {
		return pick(a.nak%2 == b.nak%2, 4, 2)
	}},
	{Maitri, 5, func(a, b moon) float64 {
		if devaSigns[a.sign] == devaSigns[b.sign] {
			return 5
		}
		switch absInt(a.sign - b.sign) {
		case 4, 5, 9:
			return 3
		}
		return 0.5
	}},
	{Gana, 6, func(a, b moon) float64 {
		switch absInt(a.nak%3 - b.nak%3) {
		case 0:
			return 6
		case 1:
			return 3
		}
		return 0
	}},
	{Bhakoot, 7, func(a, b moon) float64 {
		switch mod(b.sign-a.sign, 12) + 1 {
		case 2, 6, 8, 12:
			return 0
		}
		return 7
	}},
	// Same nadi is the most severe affliction.
	{Nadi, 8, func(a, b moon) float64 {
		return pick(a.nak%3 == b.nak%3, 0, 8)
	}},
}

// Report is the full compatibility result.
type Report struct {
	A, B    Manglik
	Verdict Verdict
	Factors []Factor
	Total   float64
	Max     float64
	// Degraded is set when any factor fell back to DegradedScore.
	Degraded bool
}

// Factor returns the named factor.
func (r Report) Factor(name string) (Factor, bool) {
	for _, f := range r.Factors {
		if f.Name == name {
			return f, true
		}
	}
	return Factor{}, false
}

// Compatibility scores chart a against chart b. It never fails: when either
// Moon is unavailable every koota scores DegradedScore and is marked
// Degraded.
func Compatibility(a, b *chart.Chart) Report {
	r := Report{
		A:   CheckManglik(a),
		B:   CheckManglik(b),
		Max: MaxScore,
	}
	r.Verdict = Combine(r.A, r.B)

	ma, okA := moonOf(a)
	mb, okB := moonOf(b)
	for _, k := range kootas {
		f := Factor{Name: k.name, Max: k.max}
		if okA && okB {
			f.Score = k.score(ma, mb)
		} else {
			f.Score = DegradedScore
			f.Degraded = true
			r.Degraded = true
		}
		r.Total += f.Score
		r.Factors = append(r.Factors, f)
	}
	return r
}

func moonOf(c *chart.Chart) (moon, bool) {
	p := c.Position(chart.Moon)
	n, _, ok := p.Nakshatra()
	if !ok {
		return moon{}, false
	}
	return moon{sign: int(p.Sign()), nak: int(n)}, true
}

func pick(cond bool, yes, no float64) float64 {
	if cond {
		return yes
	}
	return no
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func mod(a, n int) int {
	return (a%n + n) % n
}

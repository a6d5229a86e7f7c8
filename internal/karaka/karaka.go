// Package karaka ranks chart bodies into Jaimini chara (variable)
// significators by their degree within sign.
package karaka

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/papapumpkin/kundali/internal/chart"
)

// ErrUnknownScheme is returned for a scheme other than 7 or 8.
var ErrUnknownScheme = errors.New("unknown karaka scheme")

// Scheme selects the body set: seven planets, or eight including Rahu.
type Scheme int

const (
	SevenKaraka Scheme = 7
	EightKaraka Scheme = 8
)

// ParseScheme accepts 7 or 8.
func ParseScheme(n int) (Scheme, error) {
	switch s := Scheme(n); s {
	case SevenKaraka, EightKaraka:
		return s, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownScheme, n)
	}
}

// Role is a chara karaka label.
type Role string

const (
	Atma    Role = "AK"
	Amatya  Role = "AmK"
	Bhratri Role = "BK"
	Matri   Role = "MK"
	Pitri   Role = "PiK"
	Putra   Role = "PK"
	Gnati   Role = "GK"
	Dara    Role = "DK"
)

var roleNames = map[Role]string{
	Atma:    "Atmakaraka",
	Amatya:  "Amatyakaraka",
	Bhratri: "Bhratrikaraka",
	Matri:   "Matrikaraka",
	Pitri:   "Pitrikaraka",
	Putra:   "Putrakaraka",
	Gnati:   "Gnatikaraka",
	Dara:    "Darakaraka",
}

// Name returns the full role name, e.g. "Atmakaraka".
func (r Role) Name() string {
	return roleNames[r]
}

// Roles returns the role for each rank, highest degree first.
func (s Scheme) Roles() []Role {
	if s == EightKaraka {
		return []Role{Atma, Amatya, Bhratri, Matri, Pitri, Putra, Gnati, Dara}
	}
	return []Role{Atma, Amatya, Bhratri, Matri, Putra, Gnati, Dara}
}

// Bodies returns the ranked body set in tie-break precedence order: on an
// exact degree tie the earlier body ranks higher.
func (s Scheme) Bodies() []chart.Body {
	bodies := []chart.Body{chart.Sun, chart.Moon, chart.Mars, chart.Mercury, chart.Jupiter, chart.Venus, chart.Saturn}
	if s == EightKaraka {
		bodies = append(bodies, chart.Rahu)
	}
	return bodies
}

// Assignment is one ranked body.
type Assignment struct {
	Rank   int
	Role   Role
	Body   chart.Body
	Degree float64 // ranking degree; Rahu counts backwards from 30
}

// Chara ranks the scheme's bodies by degree within sign, descending, and
// assigns one role per rank. Every body of the scheme must be available; a
// partial ranking would shift every role after the gap.
func Chara(c *chart.Chart, s Scheme) ([]Assignment, error) {
	if s != SevenKaraka && s != EightKaraka {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(s))
	}
	bodies := s.Bodies()
	if err := c.Require(bodies...); err != nil {
		return nil, fmt.Errorf("chara karakas: %w", err)
	}

	type ranked struct {
		body   chart.Body
		degree float64
		order  int
	}
	rs := make([]ranked, len(bodies))
	for i, b := range bodies {
		deg := c.Position(b).Degree()
		if b == chart.Rahu {
			deg = 30 - deg
		}
		rs[i] = ranked{body: b, degree: deg, order: i}
	}
	slices.SortFunc(rs, func(a, b ranked) int {
		if c := cmp.Compare(b.degree, a.degree); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})

	roles := s.Roles()
	out := make([]Assignment, len(rs))
	for i, r := range rs {
		out[i] = Assignment{Rank: i + 1, Role: roles[i], Body: r.body, Degree: r.degree}
	}
	return out, nil
}

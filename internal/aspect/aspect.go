// Package aspect derives graha drishti (planetary aspects) between the bodies
// of a chart. Distances are counted in whole signs from the aspecting body's
// own sign, never from the Ascendant.
package aspect

import (
	"fmt"

	"github.com/papapumpkin/kundali/internal/chart"
)

// Kind classifies an aspect.
type Kind int

const (
	// Mutual is the full 7th-sign aspect every body casts.
	Mutual Kind = iota
	// Special is an extended aspect of Mars (4th, 8th), Jupiter (5th, 9th)
	// or Saturn (3rd, 10th).
	Special
)

func (k Kind) String() string {
	if k == Mutual {
		return "mutual"
	}
	return "special"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MutualHouse is the sign distance of the aspect shared by every body.
const MutualHouse = 7

var special = map[chart.Body][]int{
	chart.Mars:    {4, 8},
	chart.Jupiter: {5, 9},
	chart.Saturn:  {3, 10},
}

// Edge is one directed aspect. House is the inclusive sign count from
// Source to Target.
type Edge struct {
	Source chart.Body
	Target chart.Body
	House  int
	Kind   Kind
}

func (e Edge) String() string {
	return fmt.Sprintf("%s aspects %s (%d, %s)", e.Source, e.Target, e.House, e.Kind)
}

// Casts reports whether source aspects a body house signs away, and how.
func Casts(source chart.Body, house int) (Kind, bool) {
	if house == MutualHouse {
		return Mutual, true
	}
	for _, h := range special[source] {
		if h == house {
			return Special, true
		}
	}
	return 0, false
}

// Aspects returns every aspect between the available planets of c, ordered by
// source then target in canonical body order. Unavailable bodies neither cast
// nor receive aspects.
func Aspects(c *chart.Chart) []Edge {
	var out []Edge
	planets := chart.Planets()
	for _, src := range planets {
		sp := c.Position(src)
		if !sp.Available {
			continue
		}
		for _, dst := range planets {
			dp := c.Position(dst)
			if dst == src || !dp.Available {
				continue
			}
			house := sp.Sign().CountTo(dp.Sign())
			if kind, ok := Casts(src, house); ok {
				out = append(out, Edge{Source: src, Target: dst, House: house, Kind: kind})
			}
		}
	}
	return out
}

// Received returns the edges in edges whose target is b, preserving order.
func Received(edges []Edge, b chart.Body) []Edge {
	var out []Edge
	for _, e := range edges {
		if e.Target == b {
			out = append(out, e)
		}
	}
	return out
}

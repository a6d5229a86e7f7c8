package chart

import "github.com/papapumpkin/kundali/internal/ephemeris"

// Chart is a base (D1) chart. Positions always holds every entry of Keys;
// a key whose computation failed holds an unavailable Position and has a
// matching entry in Failures.
type Chart struct {
	ID        string
	Input     BirthInput
	JulianDay ephemeris.JulianDay
	Positions map[Body]Position
	Failures  []*BodyError
}

// Position returns the record for b. Missing keys read as unavailable.
func (c *Chart) Position(b Body) Position {
	return c.Positions[b]
}

// Available reports whether b was computed.
func (c *Chart) Available(b Body) bool {
	return c.Positions[b].Available
}

// Failure returns the error recorded for b, or nil.
func (c *Chart) Failure(b Body) *BodyError {
	for _, f := range c.Failures {
		if f.Body == b {
			return f
		}
	}
	return nil
}

// Complete reports whether every key was computed.
func (c *Chart) Complete() bool {
	return len(c.Failures) == 0
}

// unavailableError returns the recorded failure for b or a generic one when
// the chart was assembled by hand.
func (c *Chart) unavailableError(b Body) error {
	if f := c.Failure(b); f != nil {
		return f
	}
	return &BodyError{Body: b, Step: "lookup", Err: ephemeris.ErrUnavailable}
}

// Require returns an error naming the first unavailable body among bodies.
func (c *Chart) Require(bodies ...Body) error {
	for _, b := range bodies {
		if !c.Available(b) {
			return c.unavailableError(b)
		}
	}
	return nil
}

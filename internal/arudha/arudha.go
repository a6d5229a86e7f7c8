// Package arudha derives arudha padas, the "perceived" images of the houses,
// from the placement of each house lord.
package arudha

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/kundali/internal/chart"
)

// ErrInvalidHouse is returned for a house number outside 1..12.
var ErrInvalidHouse = errors.New("house must be 1..12")

// UpapadaHouse is the house whose arudha is the Upapada Lagna.
const UpapadaHouse = 12 // classical A12, not the 12th counted from the 2nd

// Pada is the arudha of one house.
type Pada struct {
	Label string // "A1".."A12", or "UL"
	House int
	Sign  chart.Sign
}

// PadaOf returns the arudha sign of house. Counting from the house sign to
// its lord's sign gives n; the pada is n-1 signs beyond the lord. A pada that
// lands on the house sign or its 7th is advanced one further sign.
//
// The only failure is an unavailable house lord, reported with the chart's
// recorded cause.
func PadaOf(table chart.HouseTable, c *chart.Chart, house int) (chart.Sign, error) {
	if house < 1 || house > 12 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidHouse, house)
	}
	h := table.House(house)
	if err := c.Require(h.Ruler); err != nil {
		return 0, fmt.Errorf("arudha of house %d: %w", house, err)
	}

	lord := c.Position(h.Ruler).Sign()
	n := h.Sign.CountTo(lord)
	pada := lord.Add(n - 1)
	if pada == h.Sign || pada == h.Sign.Add(6) {
		pada = pada.Add(1)
	}
	return pada, nil
}

// All returns A1..A12 in house order. Houses whose lord is unavailable are
// omitted and their errors joined.
func All(table chart.HouseTable, c *chart.Chart) ([]Pada, error) {
	out := make([]Pada, 0, 12)
	var errs []error
	for house := 1; house <= 12; house++ {
		s, err := PadaOf(table, c, house)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, Pada{Label: fmt.Sprintf("A%d", house), House: house, Sign: s})
	}
	return out, errors.Join(errs...)
}

// Upapada returns the Upapada Lagna, the arudha of the 12th house.
func Upapada(table chart.HouseTable, c *chart.Chart) (Pada, error) {
	s, err := PadaOf(table, c, UpapadaHouse)
	if err != nil {
		return Pada{}, err
	}
	return Pada{Label: "UL", House: UpapadaHouse, Sign: s}, nil
}

package chart

// House is one row of a HouseTable.
type House struct {
	Number int
	Sign   Sign
	Ruler  Body
}

// HouseTable maps house numbers 1..12 to their whole signs and lords.
type HouseTable [12]House

// NewHouseTable derives the table from the ascendant sign: house h holds
// sign (asc + h - 1) mod 12.
func NewHouseTable(asc Sign) HouseTable {
	var t HouseTable
	for i := range t {
		s := asc.Add(i)
		t[i] = House{Number: i + 1, Sign: s, Ruler: s.Ruler()}
	}
	return t
}

// House returns house n, wrapping numbers outside 1..12 around the zodiac.
func (t HouseTable) House(n int) House {
	return t[((n-1)%12+12)%12]
}

// Sign returns the sign occupying house n.
func (t HouseTable) Sign(n int) Sign {
	return t.House(n).Sign
}

// HouseOf returns the house number that sign s occupies.
func (t HouseTable) HouseOf(s Sign) int {
	return HouseNumber(s, t[0].Sign)
}

// HouseTable derives the table from the chart's Ascendant. It fails only when
// the Ascendant is unavailable.
func (c *Chart) HouseTable() (HouseTable, error) {
	if err := c.Require(Ascendant); err != nil {
		return HouseTable{}, err
	}
	return NewHouseTable(c.Positions[Ascendant].Sign()), nil
}

// Placement is an available body with its house number.
type Placement struct {
	Body     Body
	Position Position
	House    int
}

// Placements returns every available planet with its house relative to the
// Ascendant sign, in canonical order. Unavailable planets are omitted; their
// causes are in Chart.Failures.
func (c *Chart) Placements() ([]Placement, error) {
	if err := c.Require(Ascendant); err != nil {
		return nil, err
	}
	asc := c.Positions[Ascendant].Sign()

	out := make([]Placement, 0, len(Planets()))
	for _, b := range Planets() {
		p := c.Positions[b]
		if !p.Available {
			continue
		}
		out = append(out, Placement{Body: b, Position: p, House: HouseNumber(p.Sign(), asc)})
	}
	return out, nil
}

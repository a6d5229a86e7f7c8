// Package report flattens computed charts and compatibility results into
// serializable documents and encodes them as JSON, YAML, TOML or a plain
// text fact sheet.
package report

import (
	"github.com/papapumpkin/kundali/internal/arudha"
	"github.com/papapumpkin/kundali/internal/aspect"
	"github.com/papapumpkin/kundali/internal/chart"
	"github.com/papapumpkin/kundali/internal/ephemeris"
	"github.com/papapumpkin/kundali/internal/karaka"
	"github.com/papapumpkin/kundali/internal/varga"
)

// Options controls how a chart report is derived.
type Options struct {
	Name        string
	HouseSystem string
	Scheme      karaka.Scheme
	// Divisions selects the per-planet vargas; empty means all of them.
	Divisions []varga.Division
	// Cusps are the quadrant cusps of HouseSystem, when they could be cast.
	Cusps *ephemeris.Cusps
}

// ChartReport is the full derived chart of one person.
type ChartReport struct {
	Meta     Meta         `json:"meta" yaml:"meta" toml:"meta"`
	Planets  []Planet     `json:"planets" yaml:"planets" toml:"planets"`
	Houses   []HouseRow   `json:"houses" yaml:"houses" toml:"houses"`
	Aspects  []AspectRow  `json:"aspects" yaml:"aspects" toml:"aspects"`
	Arudhas  []PadaRow    `json:"arudhas" yaml:"arudhas" toml:"arudhas"`
	Karakas  []KarakaRow  `json:"karakas" yaml:"karakas" toml:"karakas"`
	Failures []FailureRow `json:"failures,omitempty" yaml:"failures,omitempty" toml:"failures,omitempty"`
	Warnings []string     `json:"warnings,omitempty" yaml:"warnings,omitempty" toml:"warnings,omitempty"`
}

// Meta identifies the chart.
type Meta struct {
	ID             string    `json:"id" yaml:"id" toml:"id"`
	Name           string    `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	JulianDay      float64   `json:"julian_day" yaml:"julian_day" toml:"julian_day"`
	Ayanamsa       string    `json:"ayanamsa" yaml:"ayanamsa" toml:"ayanamsa"`
	HouseSystem    string    `json:"house_system,omitempty" yaml:"house_system,omitempty" toml:"house_system,omitempty"`
	AscendantSign  string    `json:"ascendant_sign,omitempty" yaml:"ascendant_sign,omitempty" toml:"ascendant_sign,omitempty"`
	AscendantRuler string    `json:"ascendant_ruler,omitempty" yaml:"ascendant_ruler,omitempty" toml:"ascendant_ruler,omitempty"`
	AscendantDeg   float64   `json:"ascendant_degree,omitempty" yaml:"ascendant_degree,omitempty" toml:"ascendant_degree,omitempty"`
	Midheaven      float64   `json:"midheaven,omitempty" yaml:"midheaven,omitempty" toml:"midheaven,omitempty"`
	Cusps          []float64 `json:"cusps,omitempty" yaml:"cusps,omitempty" toml:"cusps,omitempty"`
	Complete       bool      `json:"complete" yaml:"complete" toml:"complete"`
}

// Planet is one available body. House is zero when the Ascendant is
// unavailable.
type Planet struct {
	Body       string            `json:"body" yaml:"body" toml:"body"`
	Longitude  float64           `json:"longitude" yaml:"longitude" toml:"longitude"`
	Sign       string            `json:"sign" yaml:"sign" toml:"sign"`
	Degree     float64           `json:"degree" yaml:"degree" toml:"degree"`
	Retrograde bool              `json:"retrograde" yaml:"retrograde" toml:"retrograde"`
	House      int               `json:"house,omitempty" yaml:"house,omitempty" toml:"house,omitempty"`
	Nakshatra  string            `json:"nakshatra" yaml:"nakshatra" toml:"nakshatra"`
	Lord       string            `json:"nakshatra_lord" yaml:"nakshatra_lord" toml:"nakshatra_lord"`
	Pada       int               `json:"pada" yaml:"pada" toml:"pada"`
	Navamsa    string            `json:"navamsa" yaml:"navamsa" toml:"navamsa"`
	Vargas     map[string]string `json:"vargas,omitempty" yaml:"vargas,omitempty" toml:"vargas,omitempty"`
	AspectedBy []string          `json:"aspected_by,omitempty" yaml:"aspected_by,omitempty" toml:"aspected_by,omitempty"`
}

// HouseRow is one entry of the house structure.
type HouseRow struct {
	House int    `json:"house" yaml:"house" toml:"house"`
	Sign  string `json:"sign" yaml:"sign" toml:"sign"`
	Ruler string `json:"ruler" yaml:"ruler" toml:"ruler"`
}

// AspectRow is one directed aspect.
type AspectRow struct {
	Source string `json:"source" yaml:"source" toml:"source"`
	Target string `json:"target" yaml:"target" toml:"target"`
	House  int    `json:"house" yaml:"house" toml:"house"`
	Kind   string `json:"kind" yaml:"kind" toml:"kind"`
}

// PadaRow is one arudha pada.
type PadaRow struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	House int    `json:"house" yaml:"house" toml:"house"`
	Sign  string `json:"sign" yaml:"sign" toml:"sign"`
}

// KarakaRow is one ranked chara karaka.
type KarakaRow struct {
	Rank   int     `json:"rank" yaml:"rank" toml:"rank"`
	Role   string  `json:"role" yaml:"role" toml:"role"`
	Name   string  `json:"name" yaml:"name" toml:"name"`
	Body   string  `json:"body" yaml:"body" toml:"body"`
	Degree float64 `json:"degree" yaml:"degree" toml:"degree"`
}

// FailureRow records an unavailable chart key.
type FailureRow struct {
	Body  string `json:"body" yaml:"body" toml:"body"`
	Step  string `json:"step" yaml:"step" toml:"step"`
	Error string `json:"error" yaml:"error" toml:"error"`
}

// NewChart derives every view of c. Derivations that depend on an
// unavailable body are left out and explained in Warnings; they never fail
// the report.
func NewChart(c *chart.Chart, opts Options) ChartReport {
	r := ChartReport{
		Meta: Meta{
			ID:          c.ID,
			Name:        opts.Name,
			JulianDay:   float64(c.JulianDay),
			Ayanamsa:    c.Input.Ayanamsa.String(),
			HouseSystem: opts.HouseSystem,
			Complete:    c.Complete(),
		},
	}
	for _, f := range c.Failures {
		r.Failures = append(r.Failures, FailureRow{Body: f.Body.String(), Step: f.Step, Error: f.Err.Error()})
	}

	table, tableErr := c.HouseTable()
	if tableErr == nil {
		asc := c.Position(chart.Ascendant)
		r.Meta.AscendantSign = asc.Sign().String()
		r.Meta.AscendantRuler = asc.Sign().Ruler().String()
		r.Meta.AscendantDeg = asc.Degree()
		for _, h := range table {
			r.Houses = append(r.Houses, HouseRow{House: h.Number, Sign: h.Sign.String(), Ruler: h.Ruler.String()})
		}
	} else {
		r.warn("houses", tableErr)
	}

	if opts.Cusps != nil {
		r.Meta.Midheaven = opts.Cusps.MC
		r.Meta.Cusps = opts.Cusps.Houses[:]
	}

	divisions := opts.Divisions
	if len(divisions) == 0 {
		divisions = varga.Divisions()
	}
	vargas := make(map[varga.Division]map[chart.Body]chart.Sign, len(divisions))
	for _, d := range divisions {
		signs, err := varga.Signs(c, d)
		if err != nil {
			r.warn("vargas", err)
			continue
		}
		vargas[d] = signs
	}

	edges := aspect.Aspects(c)
	for _, b := range chart.Planets() {
		p := c.Position(b)
		if !p.Available {
			continue
		}
		row := planetRow(b, p, table, tableErr == nil, vargas)
		for _, e := range aspect.Received(edges, b) {
			row.AspectedBy = append(row.AspectedBy, e.Source.String())
		}
		r.Planets = append(r.Planets, row)
	}

	for _, e := range edges {
		r.Aspects = append(r.Aspects, AspectRow{Source: e.Source.String(), Target: e.Target.String(), House: e.House, Kind: e.Kind.String()})
	}

	if tableErr == nil {
		padas, err := arudha.All(table, c)
		for _, p := range padas {
			r.Arudhas = append(r.Arudhas, PadaRow{Label: p.Label, House: p.House, Sign: p.Sign.String()})
		}
		r.warn("arudhas", err)
		if ul, err := arudha.Upapada(table, c); err == nil {
			r.Arudhas = append(r.Arudhas, PadaRow{Label: ul.Label, House: ul.House, Sign: ul.Sign.String()})
		}
	}

	scheme := opts.Scheme
	if scheme == 0 {
		scheme = karaka.SevenKaraka
	}
	ks, err := karaka.Chara(c, scheme)
	for _, k := range ks {
		r.Karakas = append(r.Karakas, KarakaRow{Rank: k.Rank, Role: string(k.Role), Name: k.Role.Name(), Body: k.Body.String(), Degree: k.Degree})
	}
	r.warn("karakas", err)

	return r
}

func planetRow(b chart.Body, p chart.Position, table chart.HouseTable, haveHouses bool, vargas map[varga.Division]map[chart.Body]chart.Sign) Planet {
	n, pada, _ := p.Nakshatra()
	row := Planet{
		Body:       b.String(),
		Longitude:  p.Longitude,
		Sign:       p.Sign().String(),
		Degree:     p.Degree(),
		Retrograde: p.Retrograde,
		Nakshatra:  n.String(),
		Lord:       n.Lord().String(),
		Pada:       pada,
		Navamsa:    varga.Navamsa(p.Longitude).String(),
		Vargas:     make(map[string]string, len(vargas)),
	}
	if haveHouses {
		row.House = table.HouseOf(p.Sign())
	}
	for d, signs := range vargas {
		if s, ok := signs[b]; ok {
			row.Vargas[d.String()] = s.String()
		}
	}
	return row
}

func (r *ChartReport) warn(section string, err error) {
	if err == nil {
		return
	}
	// Joined errors are listed one per line.
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			r.warn(section, e)
		}
		return
	}
	r.Warnings = append(r.Warnings, section+": "+err.Error())
}

// Karaka returns the body holding role, or "" when the ranking is absent.
func (r ChartReport) Karaka(role karaka.Role) string {
	for _, k := range r.Karakas {
		if k.Role == string(role) {
			return k.Body
		}
	}
	return ""
}

// Arudha returns the sign of the labelled pada, or "" when it is absent.
func (r ChartReport) Arudha(label string) string {
	for _, p := range r.Arudhas {
		if p.Label == label {
			return p.Sign
		}
	}
	return ""
}

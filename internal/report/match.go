package report

import "github.com/papapumpkin/kundali/internal/match"

// MatchReport is the compatibility result of two people.
type MatchReport struct {
	People      [2]Person   `json:"people" yaml:"people" toml:"people"`
	Verdict     string      `json:"verdict" yaml:"verdict" toml:"verdict"`
	Description string      `json:"description" yaml:"description" toml:"description"`
	Factors     []FactorRow `json:"factors" yaml:"factors" toml:"factors"`
	Total       float64     `json:"total" yaml:"total" toml:"total"`
	Max         float64     `json:"max" yaml:"max" toml:"max"`
	Degraded    bool        `json:"degraded" yaml:"degraded" toml:"degraded"`
}

// Person is one side of a match.
type Person struct {
	Name      string   `json:"name" yaml:"name" toml:"name"`
	ChartID   string   `json:"chart_id" yaml:"chart_id" toml:"chart_id"`
	IsManglik bool     `json:"is_manglik" yaml:"is_manglik" toml:"is_manglik"`
	Reasons   []string `json:"reasons,omitempty" yaml:"reasons,omitempty" toml:"reasons,omitempty"`
	Degraded  bool     `json:"degraded,omitempty" yaml:"degraded,omitempty" toml:"degraded,omitempty"`
}

// FactorRow is one koota sub-score.
type FactorRow struct {
	Name     string  `json:"name" yaml:"name" toml:"name"`
	Score    float64 `json:"score" yaml:"score" toml:"score"`
	Max      float64 `json:"max" yaml:"max" toml:"max"`
	Degraded bool    `json:"degraded,omitempty" yaml:"degraded,omitempty" toml:"degraded,omitempty"`
}

// Side names one chart of a match.
type Side struct {
	Name    string
	ChartID string
}

// NewMatch flattens a compatibility report.
func NewMatch(r match.Report, a, b Side) MatchReport {
	out := MatchReport{
		People: [2]Person{
			person(a, r.A),
			person(b, r.B),
		},
		Verdict:     r.Verdict.String(),
		Description: r.Verdict.Description(),
		Total:       r.Total,
		Max:         r.Max,
		Degraded:    r.Degraded,
	}
	for _, f := range r.Factors {
		out.Factors = append(out.Factors, FactorRow(f))
	}
	return out
}

func person(s Side, m match.Manglik) Person {
	return Person{
		Name:      s.Name,
		ChartID:   s.ChartID,
		IsManglik: m.IsManglik,
		Reasons:   m.Reasons,
		Degraded:  m.Degraded,
	}
}

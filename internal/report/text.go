package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/papapumpkin/kundali/internal/karaka"
	"github.com/papapumpkin/kundali/internal/varga"
)

// WriteText renders the chart as a sectioned fact sheet.
func (r ChartReport) WriteText(w io.Writer) error {
	var b bytes.Buffer

	b.WriteString("--- SECTION 1: IDENTITY ---\n")
	if r.Meta.Name != "" {
		fmt.Fprintf(&b, "NAME: %s\n", r.Meta.Name)
	}
	if r.Meta.AscendantSign != "" {
		fmt.Fprintf(&b, "ASCENDANT: %s (Ruled by %s)\n", r.Meta.AscendantSign, r.Meta.AscendantRuler)
	} else {
		b.WriteString("ASCENDANT: unavailable\n")
	}
	fmt.Fprintf(&b, "AYANAMSA: %s\n", r.Meta.Ayanamsa)
	if len(r.Meta.Cusps) == 12 {
		cusps := make([]string, len(r.Meta.Cusps))
		for i, c := range r.Meta.Cusps {
			cusps[i] = fmt.Sprintf("%d:%.2f", i+1, c)
		}
		fmt.Fprintf(&b, "CUSPS (%s): %s | MC %.2f\n", r.Meta.HouseSystem, strings.Join(cusps, " "), r.Meta.Midheaven)
	}

	b.WriteString("\n--- SECTION 2: PLANETARY POSITIONS ---\n")
	for _, p := range r.Planets {
		retro := ""
		if p.Retrograde {
			retro = " (R)"
		}
		house := "-"
		if p.House > 0 {
			house = fmt.Sprint(p.House)
		}
		fmt.Fprintf(&b, "Planet: %s%s | Sign: %s %s | House: %s | Nakshatra: %s %d (%s)\n",
			p.Body, retro, p.Sign, dms(p.Degree), house, p.Nakshatra, p.Pada, p.Lord)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "Planet: %s | unavailable (%s)\n", f.Body, f.Step)
	}

	b.WriteString("\n--- SECTION 3: NAVAMSA (D9) ---\n")
	for _, p := range r.Planets {
		fmt.Fprintf(&b, "- %s (D9): %s\n", p.Body, p.Navamsa)
	}
	for _, d := range varga.Divisions() {
		if d == varga.D1 || d == varga.D9 {
			continue
		}
		var signs []string
		for _, p := range r.Planets {
			if s, ok := p.Vargas[d.String()]; ok {
				signs = append(signs, p.Body+" "+s)
			}
		}
		if len(signs) > 0 {
			fmt.Fprintf(&b, "- %s (%s): %s\n", d.Name(), d, strings.Join(signs, ", "))
		}
	}

	b.WriteString("\n--- SECTION 4: ASPECTS & SPECIAL LAGNAS ---\n")
	for _, a := range r.Aspects {
		fmt.Fprintf(&b, "- %s aspects %s (%s, %d)\n", a.Source, a.Target, a.Kind, a.House)
	}
	fmt.Fprintf(&b, "- Upapada Lagna (UL): %s\n", orUnknown(r.Arudha("UL")))
	fmt.Fprintf(&b, "- Arudha Lagna (A1): %s\n", orUnknown(r.Arudha("A1")))
	fmt.Fprintf(&b, "- Atmakaraka (Soul): %s\n", orUnknown(r.Karaka(karaka.Atma)))

	if len(r.Warnings) > 0 {
		b.WriteString("\n--- NOTES ---\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	_, err := w.Write(b.Bytes())
	return err
}

// WriteText renders the match as a score card.
func (r MatchReport) WriteText(w io.Writer) error {
	var b bytes.Buffer

	b.WriteString("--- MANGLIK ---\n")
	for _, p := range r.People {
		status := "no"
		if p.IsManglik {
			status = "yes: " + strings.Join(p.Reasons, ", ")
		}
		fmt.Fprintf(&b, "%s: %s\n", p.Name, status)
	}
	fmt.Fprintf(&b, "Verdict: %s. %s\n", r.Verdict, r.Description)

	b.WriteString("\n--- ASHTA KOOTA ---\n")
	for _, f := range r.Factors {
		note := ""
		if f.Degraded {
			note = " (degraded)"
		}
		fmt.Fprintf(&b, "%-8s %4.1f / %g%s\n", f.Name, f.Score, f.Max, note)
	}
	fmt.Fprintf(&b, "%-8s %4.1f / %g\n", "Total", r.Total, r.Max)

	_, err := w.Write(b.Bytes())
	return err
}

// dms formats a degree within sign as 12°34'.
func dms(deg float64) string {
	d := int(deg)
	m := int((deg - float64(d)) * 60)
	return fmt.Sprintf("%02d°%02d'", d, m)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

package report

import (
	"fmt"
	"io"
)

// BatchReport collects the charts of a batch run and the profiles that
// failed.
type BatchReport struct {
	Charts []ChartReport `json:"charts" yaml:"charts" toml:"charts"`
	Errors []ItemError   `json:"errors,omitempty" yaml:"errors,omitempty" toml:"errors,omitempty"`
}

// ItemError is one failed profile.
type ItemError struct {
	Path  string `json:"path" yaml:"path" toml:"path"`
	Error string `json:"error" yaml:"error" toml:"error"`
}

// WriteText renders every fact sheet under a header, then the failures.
func (r BatchReport) WriteText(w io.Writer) error {
	for _, c := range r.Charts {
		if _, err := fmt.Fprintf(w, "=== %s ===\n", c.Meta.Name); err != nil {
			return err
		}
		if err := c.WriteText(w); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for _, e := range r.Errors {
		if _, err := fmt.Fprintf(w, "FAILED %s: %s\n", e.Path, e.Error); err != nil {
			return err
		}
	}
	return nil
}

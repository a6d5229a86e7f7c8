package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/kundali/internal/chart"
	"github.com/papapumpkin/kundali/internal/match"
	"github.com/papapumpkin/kundali/internal/profile"
	"github.com/papapumpkin/kundali/internal/report"
	"github.com/papapumpkin/kundali/internal/telemetry"
)

var matchCmd = &cobra.Command{
	Use:   "match <profile-a> <profile-b>",
	Short: "Score the Ashta Koota compatibility of two people",
	Long: `Casts both charts, checks each for Mangal Dosha and scores the eight
kootas from the Moon positions. Tara is counted from the first profile to
the second, so argument order matters for that factor only.`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	var sides [2]report.Side
	var charts [2]*chart.Chart
	for i, path := range args {
		p, err := profile.Load(path)
		if err != nil {
			return err
		}
		in, err := p.Input(d.ayanamsa)
		if err != nil {
			return err
		}
		c, err := d.engine.Compute(in)
		if err != nil {
			return fmt.Errorf("profile %s: %w", p.Name, err)
		}
		charts[i] = c
		sides[i] = report.Side{Name: p.Name, ChartID: c.ID}
	}

	r := match.Compatibility(charts[0], charts[1])
	if r.Degraded {
		d.logger.Warn("match.degraded", "a", sides[0].Name, "b", sides[1].Name)
	}
	d.emit(telemetry.Event{
		Kind: telemetry.KindMatchDone,
		Data: map[string]any{
			"a":        sides[0].ChartID,
			"b":        sides[1].ChartID,
			"total":    r.Total,
			"verdict":  r.Verdict.String(),
			"degraded": r.Degraded,
		},
	})
	return report.Encode(cmd.OutOrStdout(), report.NewMatch(r, sides[0], sides[1]), d.format)
}

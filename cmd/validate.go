package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/kundali/internal/config"
	"github.com/papapumpkin/kundali/internal/ephemeris"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration and ephemeris data files",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.ErrOrStderr()
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(w, "✗ config: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(w, "✓ config valid (ayanamsa %s, houses %s)\n", cfg.Ayanamsa, cfg.HouseSystem)

		ok := true
		m := ephemeris.NewMeeus(cfg.EphemerisPath)
		if err := m.Check(); err != nil {
			ok = false
			var ue *ephemeris.UnavailableError
			for _, e := range unwrapAll(err) {
				if errors.As(e, &ue) {
					fmt.Fprintf(w, "✗ %s: %v\n", ue.Body, ue.Err)
				} else {
					fmt.Fprintf(w, "✗ %v\n", e)
				}
			}
		} else {
			fmt.Fprintf(w, "✓ VSOP87 data found in %s\n", m.DataDir())
		}

		if !ok {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// unwrapAll flattens an errors.Join result.
func unwrapAll(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

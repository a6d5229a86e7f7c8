package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/kundali/internal/batch"
	"github.com/papapumpkin/kundali/internal/profile"
	"github.com/papapumpkin/kundali/internal/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Cast charts for every profile in a directory",
	Long: `Casts a chart for each .toml, .yaml and .yml profile directly inside dir
using --workers parallel workers. Profiles that fail are listed after the
charts; they never stop the rest of the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Bool("strict", false, "exit non-zero when any profile fails")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	paths, err := profile.Paths(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no profiles found in %s", args[0])
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &batch.Runner{
		Engine:   d.engine,
		Ayanamsa: d.ayanamsa,
		Workers:  d.cfg.Workers,
		Logger:   d.logger,
		Events:   d.events,
	}
	d.logger.Info("batch.start", "dir", args[0], "profiles", len(paths), "workers", d.cfg.Workers)
	items, runErr := runner.Run(ctx, paths)

	var out report.BatchReport
	for _, it := range items {
		switch {
		case it.Chart != nil:
			out.Charts = append(out.Charts, report.NewChart(it.Chart, d.chartOptions(it.Chart, it.Name)))
		case it.Err != nil:
			out.Errors = append(out.Errors, report.ItemError{Path: it.Path, Error: it.Err.Error()})
		}
	}
	if err := report.Encode(cmd.OutOrStdout(), out, d.format); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("batch interrupted: %w", runErr)
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(out.Errors) > 0 {
		return fmt.Errorf("%d of %d profiles failed", len(out.Errors), len(paths))
	}
	return nil
}

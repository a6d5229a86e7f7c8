package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/kundali/internal/report"
	"github.com/papapumpkin/kundali/internal/telemetry"
	"github.com/papapumpkin/kundali/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Recast charts whenever a profile in a directory changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	w, err := watch.New(args[0])
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watch %s: %w", args[0], err)
	}
	defer w.Stop()
	d.logger.Info("watch.start", "dir", args[0])

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ch, ok := <-w.Changes:
			if !ok {
				return nil
			}
			d.emit(telemetry.Event{
				Kind: telemetry.KindProfileChanged,
				Data: map[string]any{"file": ch.File, "change": ch.Kind.String()},
			})

			switch ch.Kind {
			case watch.ChangeRemoved:
				d.logger.Info("watch.removed", "file", ch.File)
				continue
			case watch.ChangeInvalid:
				d.logger.Warn("watch.invalid", "file", ch.File, "err", ch.Err)
				continue
			}

			in, err := ch.Profile.Input(d.ayanamsa)
			if err != nil {
				d.logger.Warn("watch.invalid", "file", ch.File, "err", err)
				continue
			}
			c, err := d.engine.Compute(in)
			if err != nil {
				d.logger.Warn("watch.rejected", "file", ch.File, "err", err)
				continue
			}
			fmt.Fprintf(out, "=== %s ===\n", ch.Profile.Name)
			if err := report.Encode(out, report.NewChart(c, d.chartOptions(c, ch.Profile.Name)), d.format); err != nil {
				return err
			}
		}
	}
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/kundali/internal/chart"
	"github.com/papapumpkin/kundali/internal/config"
	"github.com/papapumpkin/kundali/internal/ephemeris"
	"github.com/papapumpkin/kundali/internal/karaka"
	"github.com/papapumpkin/kundali/internal/logging"
	"github.com/papapumpkin/kundali/internal/report"
	"github.com/papapumpkin/kundali/internal/telemetry"
	"github.com/papapumpkin/kundali/internal/varga"
)

// deps bundles what every computing subcommand needs.
type deps struct {
	cfg      config.Config
	logger   *slog.Logger
	events   *telemetry.Emitter
	meeus    *ephemeris.Meeus
	engine   *chart.Engine
	ayanamsa ephemeris.Ayanamsa
	system   ephemeris.HouseSystem
	scheme   karaka.Scheme
	vargas   []varga.Division
	format   report.Format
}

// newDeps loads configuration and wires the engine. Callers must Close it.
func newDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	d := &deps{
		cfg:    cfg,
		logger: logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel),
	}
	// Validate already accepted every enumerated value.
	d.ayanamsa, _ = cfg.ParsedAyanamsa()
	d.system, _ = cfg.ParsedHouseSystem()
	d.scheme, _ = cfg.ParsedKarakaScheme()
	d.vargas, _ = cfg.ParsedVargas()
	if d.format, err = report.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}

	if cfg.TelemetryPath != "" {
		if d.events, err = telemetry.NewEmitter(cfg.TelemetryPath); err != nil {
			return nil, err
		}
	}

	d.meeus = ephemeris.NewMeeus(cfg.EphemerisPath)
	if err := d.meeus.Check(); err != nil {
		d.logger.Warn("ephemeris.data_missing", "path", cfg.EphemerisPath, "err", err)
	}
	d.engine = chart.NewEngine(d.meeus,
		chart.WithHouseSystem(d.system),
		chart.WithLogger(d.logger),
		chart.WithEmitter(d.events),
	)
	return d, nil
}

func (d *deps) Close() {
	if err := d.events.Close(); err != nil {
		d.logger.Warn("telemetry.close_failed", "err", err)
	}
}

// chartOptions casts the configured house system's cusps for c. Cusps are
// left out, not fatal, where the system has no solution.
func (d *deps) chartOptions(c *chart.Chart, name string) report.Options {
	opts := report.Options{Name: name, HouseSystem: d.system.String(), Scheme: d.scheme, Divisions: d.vargas}
	cusps, err := d.meeus.Houses(c.JulianDay, c.Input.Latitude, c.Input.Longitude, d.system, c.Input.Ayanamsa)
	if err != nil {
		d.logger.Warn("chart.cusps_unavailable", "chart_id", c.ID, "house_system", d.system, "err", err)
		return opts
	}
	opts.Cusps = &cusps
	return opts
}

func (d *deps) emit(evt telemetry.Event) {
	if err := d.events.Emit(evt); err != nil {
		d.logger.Warn("telemetry.emit_failed", "kind", evt.Kind, "err", err)
	}
}

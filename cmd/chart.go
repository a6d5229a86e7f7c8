package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/kundali/internal/chart"
	"github.com/papapumpkin/kundali/internal/ephemeris"
	"github.com/papapumpkin/kundali/internal/profile"
	"github.com/papapumpkin/kundali/internal/report"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Cast the birth chart of one person",
	Long: `Casts a sidereal birth chart and prints planets, houses, aspects,
arudha padas and chara karakas.

Birth data comes from a profile file (--profile) or from flags:

  kundali chart --date 1995-08-25 --time 14:30 --lat 28.61 --lon 77.20 --tz 5.5`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

func init() {
	f := chartCmd.Flags()
	f.String("profile", "", "birth profile file (.toml, .yaml)")
	f.String("name", "", "name shown in the report")
	f.String("date", "", "birth date, YYYY-MM-DD")
	f.String("time", "", "local birth time, HH:MM")
	f.Float64("lat", 0, "latitude in degrees, north positive")
	f.Float64("lon", 0, "longitude in degrees, east positive")
	f.Float64("tz", 0, "timezone offset in hours east of UTC")
	chartCmd.MarkFlagsMutuallyExclusive("profile", "date")
	chartCmd.MarkFlagsRequiredTogether("date", "time", "lat", "lon", "tz")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, _ []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	name, in, err := birthInput(cmd, d.ayanamsa)
	if err != nil {
		return err
	}

	c, err := d.engine.Compute(in)
	if err != nil {
		return err
	}
	return report.Encode(cmd.OutOrStdout(), report.NewChart(c, d.chartOptions(c, name)), d.format)
}

// birthInput reads birth data from --profile or the individual flags.
func birthInput(cmd *cobra.Command, def ephemeris.Ayanamsa) (string, chart.BirthInput, error) {
	flags := cmd.Flags()
	name, _ := flags.GetString("name")

	if path, _ := flags.GetString("profile"); path != "" {
		p, err := profile.Load(path)
		if err != nil {
			return "", chart.BirthInput{}, err
		}
		if name == "" {
			name = p.Name
		}
		in, err := p.Input(def)
		return name, in, err
	}

	date, _ := flags.GetString("date")
	clock, _ := flags.GetString("time")
	if date == "" {
		return "", chart.BirthInput{}, errors.New("either --profile or --date/--time/--lat/--lon/--tz is required")
	}
	in, err := parseMoment(date, clock)
	if err != nil {
		return "", chart.BirthInput{}, err
	}
	in.Latitude, _ = flags.GetFloat64("lat")
	in.Longitude, _ = flags.GetFloat64("lon")
	in.Timezone, _ = flags.GetFloat64("tz")
	in.Ayanamsa = def
	return name, in, nil
}

// parseMoment fills the calendar fields of a BirthInput. Range checks beyond
// the layout are left to BirthInput.Validate.
func parseMoment(date, clock string) (chart.BirthInput, error) {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return chart.BirthInput{}, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", date)
	}
	at, err := time.Parse("15:04", clock)
	if err != nil {
		return chart.BirthInput{}, fmt.Errorf("invalid --time %q: want HH:MM", clock)
	}
	return chart.BirthInput{
		Year:   day.Year(),
		Month:  int(day.Month()),
		Day:    day.Day(),
		Hour:   at.Hour(),
		Minute: at.Minute(),
	}, nil
}

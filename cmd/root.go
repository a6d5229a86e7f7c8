package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/kundali/internal/report"
)

var rootCmd = &cobra.Command{
	Use:   "kundali",
	Short: "Sidereal (Vedic) birth chart calculator",
	Long: `Kundali casts sidereal birth charts from date, time and place: planetary
positions, houses, divisional charts, aspects, arudha padas and chara karakas,
and scores the Ashta Koota compatibility of two charts.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// persistentFlags maps each global flag to its config key.
var persistentFlags = []struct {
	flag, key, usage string
}{
	{"ephemeris-path", "ephemeris_path", "directory holding the VSOP87B data files"},
	{"ayanamsa", "ayanamsa", "default ayanamsa: LAHIRI, RAMAN, KRISHNAMURTI, FAGAN_BRADLEY"},
	{"house-system", "house_system", "house system: placidus, equal, whole_sign"},
	{"log-level", "log_level", "log level: debug, info, warn, error"},
	{"log-format", "log_format", "log format: text, json"},
	{"telemetry", "telemetry_path", "append JSONL events to this file"},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .kundali.yaml)")
	for _, f := range persistentFlags {
		pf.String(f.flag, "", f.usage)
		_ = viper.BindPFlag(f.key, pf.Lookup(f.flag))
	}
	pf.String("format", "", "output format: "+strings.Join(report.FormatNames(), ", "))
	_ = viper.BindPFlag("format", pf.Lookup("format"))
	pf.StringSlice("vargas", nil, "divisional charts to report, e.g. D9,D10 (default all)")
	_ = viper.BindPFlag("vargas", pf.Lookup("vargas"))
	pf.Int("karaka-scheme", 0, "chara karaka scheme: 7 or 8")
	_ = viper.BindPFlag("karaka_scheme", pf.Lookup("karaka-scheme"))
	pf.Int("workers", 0, "parallel workers for batch runs (default: number of CPUs)")
	_ = viper.BindPFlag("workers", pf.Lookup("workers"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".kundali")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("KUNDALI")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

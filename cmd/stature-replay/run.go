package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/stature/internal/config"
	"github.com/banshee-data/stature/internal/scenario"
	"github.com/banshee-data/stature/internal/units"
)

func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Replay a scenario and print the transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			// An explicit flag beats the scenario's own units.
			if opts.units != "" {
				sc.Units = opts.units
			}

			out := cmd.OutOrStdout()
			res, err := scenario.Play(sc, cfg, out)
			if err != nil {
				return fmt.Errorf("replay %s: %w", args[0], err)
			}

			fmt.Fprintf(out, "\n%d events over %s, %d planes, %d resets, %d failures\n",
				res.Events, res.Elapsed, res.Planes, res.Restarts, res.Failures)
			if res.Measurement != nil {
				unit := cfg.GetDisplayUnits()
				if sc.Units != "" {
					unit = sc.Units
				}
				fmt.Fprintf(out, "final height above %s: %s\n", res.Selected, res.Measurement.Format(unit))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Tuning config JSON (default: built-in defaults)")
	cmd.Flags().StringVar(&opts.units, "units", "", "Display units: "+units.GetValidUnitsString())
	return cmd
}

// loadConfig reads the tuning file, if any, and applies the --units override.
func loadConfig(opts *options) (*config.TuningConfig, error) {
	cfg := config.DefaultTuningConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadTuningConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.units != "" {
		if !units.IsValid(opts.units) {
			return nil, fmt.Errorf("invalid --units %q, must be one of %s", opts.units, units.GetValidUnitsString())
		}
		u := opts.units
		cfg.DisplayUnits = &u
	}
	return cfg, nil
}

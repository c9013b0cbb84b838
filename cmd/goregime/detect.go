package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sartorproj/goregime/regime"
	"github.com/sartorproj/goregime/report"
)

// Lag-1 autocorrelation above which detection results are flagged.
const redNoise = 0.3

func newDetectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Detect regime shifts with a single minimum length",
		Example: `  goregime detect flow.csv --column flow -l 10 -p 0.05
  goregime detect gauges.xlsx --sheet annual --annual --period 1 -f json -o shifts.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDetect(cmd, args)
		},
	}
	addInputFlags(cmd)
	cmd.Flags().IntP("length", "l", 10, "Minimum regime length l")
	return cmd
}

func (a *app) runDetect(cmd *cobra.Command, args []string) (err error) {
	cfg := a.cfg
	if len(args) == 1 {
		cfg.Input.Path = args[0]
	}

	series, err := loadSeries(cfg.Input)
	if err != nil {
		return err
	}
	if series, err = prepare(series, cfg.Prep); err != nil {
		return err
	}

	rc := cfg.RegimeConfig()
	res, err := regime.New(rc, regime.WithLogger(log.Logger)).Detect(series.Values)
	if err != nil {
		return fmt.Errorf("detect: %w", err)
	}

	if len(res.Shifts) == 0 {
		log.Info().
			Int("l", rc.MinLength).
			Float64("p", rc.Probability).
			Int("candidates", len(res.Candidates)).
			Msg("no significant shift found; consider relaxing p")
	} else {
		log.Info().Ints("shifts", res.Shifts).Msg("regime shifts detected")
	}

	out, err := openOutput(cfg.Output.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	d := report.FromDetection(series, *rc, res)
	if d.Lag1 > redNoise {
		log.Warn().
			Float64("lag1", d.Lag1).
			Msg("series is strongly autocorrelated; shifts may be overstated")
	}
	switch cfg.Output.Format {
	case "json":
		return report.WriteJSON(out, d)
	case "csv":
		return report.WriteDetectionCSV(out, d)
	default:
		return report.WriteDetectionText(out, d)
	}
}

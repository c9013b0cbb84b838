package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sartorproj/goregime/report"
	"github.com/sartorproj/goregime/sweep"
)

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [file]",
		Short: "Run detection over a range of minimum lengths and count shifts per index",
		Example: `  goregime sweep flow.csv --annual --min-l 5 --max-l 40 -p 0.05
  goregime sweep flow.csv --consensus 10 -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSweep(cmd, args)
		},
	}
	addInputFlags(cmd)
	cmd.Flags().Int("min-l", 5, "Smallest minimum regime length")
	cmd.Flags().Int("max-l", 35, "Largest minimum regime length (inclusive)")
	cmd.Flags().Int("workers", 0, "Concurrent trials (0 = GOMAXPROCS)")
	cmd.Flags().Int("consensus", 0, "Report indices found by at least this many trials (0 = half of completed)")
	return cmd
}

func (a *app) runSweep(cmd *cobra.Command, args []string) (err error) {
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

	sc := cfg.SweepConfig()
	ctx := log.Logger.WithContext(cmd.Context())
	res, err := sweep.Run(ctx, series.Values, sc)
	if err != nil {
		return err
	}

	rep := report.FromSweep(series, *sc, res)
	if n, _ := cmd.Flags().GetInt("consensus"); n > 0 {
		rep.Consensus = res.Consensus(n)
	}

	log.Info().
		Int("completed", res.Completed).
		Int("lengths", len(res.Trials)).
		Ints("consensus", rep.Consensus).
		Msg("sweep finished")
	if res.Completed < len(res.Trials) {
		log.Warn().
			Int("skipped", len(res.Trials)-res.Completed).
			Msgf("series of %d points is too short for the largest lengths", series.Len())
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

	switch cfg.Output.Format {
	case "json":
		return report.WriteJSON(out, rep)
	case "csv":
		return report.WriteSweepCSV(out, rep)
	default:
		return report.WriteSweepText(out, rep)
	}
}

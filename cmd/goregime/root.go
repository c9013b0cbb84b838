package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sartorproj/goregime/internal/config"
)

// app holds state shared by every subcommand.
type app struct {
	configPath string
	envFile    string
	logLevel   string

	cfg *config.Config
}

// Execute builds the command tree and runs it with args.
func Execute(ctx context.Context, args []string) error {
	root := newRootCmd(&app{})
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "goregime",
		Short: "Sequential regime shift detection (STARS)",
		Long: `goregime finds shifts in the mean of a series with Rodionov's sequential
t-test. Settings come from an optional YAML file, a .env file, GOREGIME_*
environment variables and flags, in increasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "goregime.yaml", "Path to YAML config (optional)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Path to .env file (optional)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace|debug|info|warn|error)")

	root.AddCommand(newDetectCmd(a), newSweepCmd(a), newVersionCmd())
	return root
}

// load resolves the configuration for the command about to run.
func (a *app) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)
	log.Debug().Str("config", a.configPath).Interface("settings", cfg).Msg("configuration loaded")

	a.cfg = cfg
	return nil
}

// applyFlags copies flags set on the command line over cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()

	str := func(name string, dst *string) {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	num := func(name string, dst *int) {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			*dst, _ = fs.GetInt(name)
		}
	}
	flag := func(name string, dst *bool) {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			*dst, _ = fs.GetBool(name)
		}
	}

	str("input", &cfg.Input.Path)
	str("format", &cfg.Input.Format)
	str("column", &cfg.Input.Column)
	str("date-column", &cfg.Input.DateColumn)
	str("sheet", &cfg.Input.Sheet)
	num("period", &cfg.Prep.Period)
	flag("log", &cfg.Prep.Log)
	flag("annual", &cfg.Prep.Annual)
	flag("normalize", &cfg.Prep.Normalize)
	str("save-prepared", &cfg.Prep.Save)

	num("length", &cfg.Detect.MinLength)
	str("mode", &cfg.Detect.Mode)
	str("variance", &cfg.Detect.Variance)
	if fs.Lookup("probability") != nil && fs.Changed("probability") {
		cfg.Detect.Probability, _ = fs.GetFloat64("probability")
	}

	num("min-l", &cfg.Sweep.MinLength)
	num("max-l", &cfg.Sweep.MaxLength)
	num("workers", &cfg.Sweep.Workers)

	str("output", &cfg.Output.Path)
	str("output-format", &cfg.Output.Format)
}

// addInputFlags registers the flags shared by detect and sweep.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "", "Input CSV or XLSX file (or first argument)")
	f.String("format", "", "Input format (csv|xlsx|xlsm), inferred from the extension when empty")
	f.String("column", "", "Value column name")
	f.String("date-column", "", "Date column name (auto-detected when empty)")
	f.String("sheet", "", "XLSX sheet name (default: first sheet)")
	f.Int("period", 0, "Seasonal standardization period, 0 disables (12 = calendar months)")
	f.Bool("log", false, "Log-transform values (before seasonal standardization when --period is set)")
	f.Bool("annual", false, "Average observations per calendar year after seasonal standardization")
	f.Bool("normalize", false, "Convert the prepared series to z-scores")
	f.String("save-prepared", "", "Write the prepared series to this CSV file")
	f.Float64P("probability", "p", 0.05, "Significance probability of the t-test")
	f.String("mode", "", "Scan convention (standard|reference)")
	f.String("variance", "", "Window variance estimator (population|sample)")
	f.StringP("output", "o", "", "Output file (default: stdout)")
	f.StringP("output-format", "f", "", "Output format (text|json|csv)")
}

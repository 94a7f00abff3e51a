package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meenmo/scencurve/config"
	"github.com/meenmo/scencurve/report"
	"github.com/meenmo/scencurve/scenario"
)

// CalibrateOptions holds calibrate flags.
type CalibrateOptions struct {
	InputPath string
	Strategy  string
	Passes    int
	Workers   int
}

// ScenarioResult is the output of one calibrated scenario.
type ScenarioResult struct {
	Name string              `json:"name" yaml:"name"`
	Rows []report.CompareRow `json:"rows" yaml:"rows"`
}

// NewCalibrateCommand creates the calibrate command.
func NewCalibrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalibrateOptions{}

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Calibrate scenario curves from an input file",
		Long: `Calibrate reads a base curve and one or more target spread schedules
(YAML or JSON, from --input or stdin), calibrates a scenario curve per
schedule and prints base and scenario zero and forward rates on every
curve date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strategy") {
				cfg.Strategy = strings.ToLower(opts.Strategy)
			}
			if cmd.Flags().Changed("passes") {
				cfg.Passes = opts.Passes
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			raw, err := readInput(opts.InputPath, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return runCalibrate(cmd, rootOpts, opts, cfg, raw)
		},
	}

	cmd.Flags().StringVarP(&opts.InputPath, "input", "i", "", "YAML/JSON input path (reads stdin if omitted)")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", config.StrategyForward, "matching strategy (forward|spot)")
	cmd.Flags().IntVar(&opts.Passes, "passes", config.DefaultConfig.Passes, "sweeps over the nodes")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "scenarios calibrated in parallel (0 = GOMAXPROCS)")

	return cmd
}

func runCalibrate(cmd *cobra.Command, rootOpts *RootOptions, opts *CalibrateOptions, cfg config.Config, raw []byte) error {
	logger := newLogger(cmd.ErrOrStderr(), rootOpts.Verbose)

	in, err := ParseInput(raw)
	if err != nil {
		return err
	}
	dates, err := in.CurveDates()
	if err != nil {
		return err
	}
	valuation, err := in.Valuation(dates)
	if err != nil {
		return err
	}
	base, err := in.BaseCurve(dates)
	if err != nil {
		return err
	}
	logger.Info("base curve built", "dates", len(dates), "scenarios", len(in.Scenarios))

	curves, err := scenario.CalibrateAll(cmd.Context(), base, in.Targets(), valuation, opts.Workers,
		scenario.WithConfig(cfg), scenario.WithLogger(logger))
	if err != nil {
		return err
	}

	results := make([]ScenarioResult, 0, len(curves))
	for i, curve := range curves {
		rows, err := report.Compare(base, curve, dates, valuation)
		if err != nil {
			return err
		}
		results = append(results, ScenarioResult{Name: in.Scenarios[i].Name, Rows: rows})
	}

	out := cmd.OutOrStdout()
	if rootOpts.Format != report.FormatText {
		return report.Write(out, rootOpts.Format, results)
	}
	for _, r := range results {
		fmt.Fprintf(out, "== %s ==\n", r.Name)
		if err := report.Write(out, report.FormatText, r.Rows); err != nil {
			return err
		}
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

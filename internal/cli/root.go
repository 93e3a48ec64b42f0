// Package cli implements environctl, a command-line front end to the trend
// generator and summarizer.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"environapi/internal/cli/output"
	"environapi/internal/config"
	"environapi/internal/logging"
	"environapi/internal/modules/environment/service"
	"environapi/internal/modules/environment/trend"
	"environapi/internal/modules/environment/types"
)

const appName = "environctl"

var version = "dev"

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

// options is state shared by every subcommand, filled in PersistentPreRunE.
type options struct {
	color   string
	verbose bool

	cfg     config.Config
	logger  *slog.Logger
	printer *output.Printer
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate and summarize synthetic classroom sensor data",
		Long: `environctl generates synthetic environmental readings (light, temperature,
humidity and sound) on a 15-minute grid and summarizes a selected metric.

Defaults such as the date range and the maximum span come from the same
environment variables and config.yaml as the server.

Example usage:
  environctl generate --start 2024-01-01 --end 2024-01-01
  environctl summary --metric sound --seed 42
  environctl metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output: auto, always or never")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newSummaryCmd(opts),
		newMetricsCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs environctl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) init(cmd *cobra.Command) error {
	mode, err := output.ParseColorMode(o.color)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	o.cfg = cfg
	o.logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg, version, appName)
	o.printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ResolveColors(mode))

	o.logger.Debug("configuration loaded",
		"config_file", cfg.ConfigFile,
		"default_start", cfg.DefaultStart.Format(trend.DateLayout),
		"default_end", cfg.DefaultEnd.Format(trend.DateLayout),
		"max_range_days", cfg.MaxRangeDays,
	)
	return nil
}

// rangeFlags are the date and randomness flags shared by generate and summary.
type rangeFlags struct {
	start  string
	end    string
	seed   uint64
	output string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "first day, YYYY-MM-DD (default DEFAULT_START_DATE)")
	cmd.Flags().StringVar(&f.end, "end", "", "last day, YYYY-MM-DD (default DEFAULT_END_DATE)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for reproducible output (default random)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "table", "output format: table or json")
}

func (o *options) timeRange(f *rangeFlags) (types.TimeRange, error) {
	defaults := types.TimeRange{Start: o.cfg.DefaultStart, End: o.cfg.DefaultEnd}
	r, err := trend.ParseRange(f.start, f.end, defaults)
	if err != nil {
		return types.TimeRange{}, err
	}
	if err := trend.CheckSpan(r, o.cfg.MaxRangeDays); err != nil {
		return types.TimeRange{}, err
	}
	return r, nil
}

// service returns a service whose tables are reproducible when --seed is set.
func (o *options) service(cmd *cobra.Command, f *rangeFlags) *service.Service {
	if !cmd.Flags().Changed("seed") {
		return service.NewService(o.logger)
	}
	seed := f.seed
	return service.NewService(o.logger, service.WithRandomSource(func() trend.RandomSource {
		return trend.NewSeededSource(seed)
	}))
}

func checkOutput(format string) error {
	switch format {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("%w: output format %q (allowed: table, json)", trend.ErrInvalidInput, format)
	}
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

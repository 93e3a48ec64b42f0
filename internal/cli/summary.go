package cli

import (
	"github.com/spf13/cobra"

	"environapi/internal/cli/output"
	"environapi/internal/modules/environment/trend"
	"environapi/internal/modules/environment/types"
)

type summaryReport struct {
	Metric types.MetricOption `json:"metric"`
	Range  types.TimeRange    `json:"range"`
	Points int                `json:"points"`
	Stats  types.SummaryStats `json:"stats"`
	Rows   []types.SummaryRow `json:"rows"`
}

func newSummaryCmd(opts *options) *cobra.Command {
	var (
		flags  rangeFlags
		metric string
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize one metric over a date range",
		Long: `Print the max, min and average of one metric over the range.
Fails when the range holds no readings, e.g. when --start is after --end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(flags.output); err != nil {
				return err
			}
			m, err := trend.ParseMetric(metric)
			if err != nil {
				return err
			}
			r, err := opts.timeRange(&flags)
			if err != nil {
				return err
			}
			if r.Inverted() {
				opts.printer.Warning(invertedRangeWarning)
			}

			series, stats, err := opts.service(cmd, &flags).Summary(r, m)
			if err != nil {
				return err
			}
			report := summaryReport{
				Metric: m.Option(),
				Range:  r,
				Points: len(series),
				Stats:  stats,
				Rows:   stats.Rows(),
			}
			return printSummary(opts.printer, flags.output, report)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&metric, "metric", "m", types.MetricTemperature.Key(), "metric to summarize (temperature, humidity, sound, light)")
	return cmd
}

func printSummary(p *output.Printer, format string, report summaryReport) error {
	if format == "json" {
		return encodeJSON(p, report)
	}
	p.Header("Analytics Summary")
	p.Print("Selected Metric: %s", p.Bold(report.Metric.Label))
	p.Print("Displaying data from %s to %s (%d readings)",
		report.Range.Start.Format(trend.DateLayout),
		report.Range.End.Format(trend.DateLayout),
		report.Points,
	)
	p.Print("")

	tbl := output.NewTable(p.Out(), []string{"Statistic", "Value"})
	for _, row := range report.Rows {
		tbl.AddRow(row.Statistic, row.Value)
	}
	return tbl.Render()
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"environapi/internal/cli/output"
	"environapi/internal/modules/environment/trend"
	"environapi/internal/modules/environment/types"
)

const (
	invertedRangeWarning = "Start date cannot be after the end date!"
	tickLayout           = "2006-01-02 15:04"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		flags  rangeFlags
		metric string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print generated readings",
		Long: `Print one reading per 15-minute tick from --start 00:00 through --end 23:45.
With --metric only that column is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(flags.output); err != nil {
				return err
			}
			r, err := opts.timeRange(&flags)
			if err != nil {
				return err
			}
			if r.Inverted() {
				opts.printer.Warning(invertedRangeWarning)
			}
			svc := opts.service(cmd, &flags)

			if metric == "" {
				return printTable(opts.printer, flags.output, svc.Table(r))
			}
			m, err := trend.ParseMetric(metric)
			if err != nil {
				return err
			}
			series, err := svc.Series(r, m)
			if err != nil {
				return err
			}
			return printSeries(opts.printer, flags.output, m, series)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&metric, "metric", "m", "", "print a single metric (temperature, humidity, sound, light)")
	return cmd
}

func printTable(p *output.Printer, format string, table types.TrendTable) error {
	if format == "json" {
		return encodeJSON(p, table)
	}
	headers := []string{"Time"}
	for _, m := range types.Metrics {
		headers = append(headers, m.Label())
	}
	tbl := output.NewTable(p.Out(), headers)
	for _, r := range table {
		row := []string{r.Time.Format(tickLayout)}
		for _, m := range types.Metrics {
			v, _ := trend.Value(r, m)
			row = append(row, formatValue(v))
		}
		tbl.AddRow(row...)
	}
	if err := tbl.Render(); err != nil {
		return err
	}
	p.Print("%d readings", len(table))
	return nil
}

func printSeries(p *output.Printer, format string, m types.Metric, series types.Series) error {
	if format == "json" {
		return encodeJSON(p, series)
	}
	tbl := output.NewTable(p.Out(), []string{"Time", m.Label()})
	for _, pt := range series {
		tbl.AddRow(pt.Time.Format(tickLayout), formatValue(pt.Value))
	}
	if err := tbl.Render(); err != nil {
		return err
	}
	p.Print("%d readings", len(series))
	return nil
}

func encodeJSON(p *output.Printer, v any) error {
	enc := json.NewEncoder(p.Out())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

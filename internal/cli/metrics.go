package cli

import (
	"github.com/spf13/cobra"

	"environapi/internal/cli/output"
	"environapi/internal/modules/environment/types"
)

func newMetricsCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "List the selectable metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(format); err != nil {
				return err
			}
			metricOpts := make([]types.MetricOption, 0, len(types.Metrics))
			for _, m := range types.Metrics {
				metricOpts = append(metricOpts, m.Option())
			}
			if format == "json" {
				return encodeJSON(opts.printer, metricOpts)
			}

			tbl := output.NewTable(opts.printer.Out(), []string{"Key", "Label", "Unit"})
			for _, m := range metricOpts {
				tbl.AddRow(m.Key, m.Label, m.Unit)
			}
			return tbl.Render()
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "table", "output format: table or json")
	return cmd
}

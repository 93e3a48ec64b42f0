package trend

import (
	"fmt"
	"math"

	"environapi/internal/modules/environment/types"
)

// Project pulls the chosen channel out of table. Unknown metrics project to
// an empty series.
func Project(table types.TrendTable, metric types.Metric) types.Series {
	value, ok := channels[metric]
	if !ok {
		return types.Series{}
	}
	out := make(types.Series, 0, len(table))
	for _, r := range table {
		out = append(out, types.Point{Time: r.Time, Value: value(r)})
	}
	return out
}

var channels = map[types.Metric]func(types.Reading) float64{
	types.MetricTemperature: func(r types.Reading) float64 { return r.Temperature },
	types.MetricHumidity:    func(r types.Reading) float64 { return r.HumidityPct },
	types.MetricSound:       func(r types.Reading) float64 { return r.SoundDB },
	types.MetricLight:       func(r types.Reading) float64 { return r.LightLux },
}

// Value returns one channel of r. ok is false for an unknown metric.
func Value(r types.Reading, metric types.Metric) (v float64, ok bool) {
	value, ok := channels[metric]
	if !ok {
		return 0, false
	}
	return value(r), true
}

// Summarize reduces series to max, min and mean. It fails with ErrEmptyInput
// on an empty series.
func Summarize(series types.Series) (types.SummaryStats, error) {
	if len(series) == 0 {
		return types.SummaryStats{}, fmt.Errorf("summarize: %w", ErrEmptyInput)
	}

	lo, hi := series[0].Value, series[0].Value
	var sum float64
	for _, p := range series {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
		sum += p.Value
	}

	// Rounding in sum can push the mean a hair outside [lo, hi].
	mean := math.Min(hi, math.Max(lo, sum/float64(len(series))))

	return types.SummaryStats{Max: hi, Min: lo, Mean: mean}, nil
}

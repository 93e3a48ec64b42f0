package views

import (
	"time"

	"environapi/internal/modules/environment/types"
)

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// ChartSpec is a Vega-Lite specification: a translucent area under a
// monotone line, with tooltips and scale-bound zoom and pan.
type ChartSpec struct {
	Schema   string        `json:"$schema"`
	Title    string        `json:"title"`
	Width    string        `json:"width"`
	Height   int           `json:"height"`
	Data     chartData     `json:"data"`
	Encoding chartEncoding `json:"encoding"`
	Layer    []chartLayer  `json:"layer"`
}

type chartData struct {
	Values []chartDatum `json:"values"`
}

type chartDatum struct {
	DateTime string  `json:"DateTime"`
	Value    float64 `json:"Value"`
}

type chartEncoding struct {
	X       chartField   `json:"x"`
	Y       chartField   `json:"y"`
	Tooltip []chartField `json:"tooltip,omitempty"`
}

type chartField struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

type chartMark struct {
	Type        string  `json:"type"`
	Interpolate string  `json:"interpolate"`
	Opacity     float64 `json:"opacity,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

type chartParam struct {
	Name   string `json:"name"`
	Select string `json:"select"`
	Bind   string `json:"bind"`
}

type chartLayer struct {
	Mark     chartMark      `json:"mark"`
	Encoding *chartEncoding `json:"encoding,omitempty"`
	Params   []chartParam   `json:"params,omitempty"`
}

// NewChartSpec builds the "<label> Over Time" chart for series.
func NewChartSpec(series types.Series, metric types.Metric) ChartSpec {
	values := make([]chartDatum, 0, len(series))
	for _, p := range series {
		values = append(values, chartDatum{DateTime: p.Time.UTC().Format(time.RFC3339), Value: p.Value})
	}

	x := chartField{Field: "DateTime", Type: "temporal", Title: "Date"}
	y := chartField{Field: "Value", Type: "quantitative", Title: metric.Label()}

	return ChartSpec{
		Schema:   vegaLiteSchema,
		Title:    metric.Label() + " Over Time",
		Width:    "container",
		Height:   400,
		Data:     chartData{Values: values},
		Encoding: chartEncoding{X: x, Y: y},
		Layer: []chartLayer{
			{
				Mark:   chartMark{Type: "area", Interpolate: "monotone", Opacity: 0.2},
				Params: []chartParam{{Name: "zoom", Select: "interval", Bind: "scales"}},
			},
			{
				Mark: chartMark{Type: "line", Interpolate: "monotone", StrokeWidth: 2},
				Encoding: &chartEncoding{
					X:       x,
					Y:       y,
					Tooltip: []chartField{{Field: "DateTime", Type: "temporal"}, {Field: "Value", Type: "quantitative"}},
				},
			},
		},
	}
}

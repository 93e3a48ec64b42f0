package types

import (
	"fmt"
	"time"
)

// Reading is one synthetic sample on the 15-minute grid.
type Reading struct {
	Time        time.Time `json:"time"`
	LightLux    float64   `json:"light_lux"`
	Temperature float64   `json:"temperature_c"`
	HumidityPct float64   `json:"humidity_pct"`
	SoundDB     float64   `json:"sound_db"`
}

// TrendTable is ordered by ascending Time, one Reading per tick.
type TrendTable []Reading

// Metric selects one channel of a Reading.
type Metric int

const (
	MetricTemperature Metric = iota
	MetricHumidity
	MetricSound
	MetricLight
)

// Metrics lists the selectable metrics in display order.
var Metrics = []Metric{MetricTemperature, MetricHumidity, MetricSound, MetricLight}

type metricInfo struct {
	key   string
	label string
	unit  string
}

var metricInfos = map[Metric]metricInfo{
	MetricTemperature: {key: "temperature", label: "Temperature (°C)", unit: "°C"},
	MetricHumidity:    {key: "humidity", label: "Humidity (%)", unit: "%"},
	MetricSound:       {key: "sound", label: "Sound Level (dB)", unit: "dB"},
	MetricLight:       {key: "light", label: "Light (lux)", unit: "lux"},
}

// Valid reports whether m is one of Metrics.
func (m Metric) Valid() bool {
	_, ok := metricInfos[m]
	return ok
}

// Key is the stable identifier used in query strings and JSON.
func (m Metric) Key() string {
	if info, ok := metricInfos[m]; ok {
		return info.key
	}
	return fmt.Sprintf("metric(%d)", int(m))
}

// Label is the display name, unit included.
func (m Metric) Label() string {
	if info, ok := metricInfos[m]; ok {
		return info.label
	}
	return m.Key()
}

// Unit is empty for an invalid metric.
func (m Metric) Unit() string {
	return metricInfos[m].unit
}

func (m Metric) String() string {
	return m.Key()
}

// MetricOption is the JSON/view shape of a metric selection.
type MetricOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Unit  string `json:"unit"`
}

// Option is the metric as listed by /api/metrics.
func (m Metric) Option() MetricOption {
	return MetricOption{Key: m.Key(), Label: m.Label(), Unit: m.Unit()}
}

// Point is one value of a projected series.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is one metric projected out of a TrendTable, in time order.
type Series []Point

// SummaryStats holds the reduction of a Series; Min <= Mean <= Max.
type SummaryStats struct {
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
}

// SummaryRow is one line of the analytics table.
type SummaryRow struct {
	Statistic string `json:"statistic"`
	Value     string `json:"value"`
}

// Rows returns the analytics table with each value formatted to two decimals.
func (s SummaryStats) Rows() []SummaryRow {
	return []SummaryRow{
		{Statistic: "Max Value", Value: fmt.Sprintf("%.2f", s.Max)},
		{Statistic: "Min Value", Value: fmt.Sprintf("%.2f", s.Min)},
		{Statistic: "Average Value", Value: fmt.Sprintf("%.2f", s.Mean)},
	}
}

// Location is a display-only room label.
type Location struct {
	Name string `json:"name"`
}

// TimeRange is a pair of calendar dates at midnight UTC. Start may be after
// End; callers surface that as a warning rather than an error.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Inverted reports whether Start is after End.
func (r TimeRange) Inverted() bool {
	return r.Start.After(r.End)
}

// Days returns the number of calendar days covered, both ends inclusive, or 0
// when the range is inverted.
func (r TimeRange) Days() int {
	if r.Inverted() {
		return 0
	}
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}

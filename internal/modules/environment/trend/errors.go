// Package trend synthesizes environmental sensor readings over a date range
// and reduces a selected metric to summary statistics.
package trend

import "errors"

var (
	// ErrInvalidInput marks malformed caller input: unparsable dates, an
	// unknown metric, or a range beyond the configured span.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput is returned when a summary is requested over no points.
	ErrEmptyInput = errors.New("empty input")
)

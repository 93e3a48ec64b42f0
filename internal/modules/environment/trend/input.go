package trend

import (
	"fmt"
	"strings"
	"time"

	"environapi/internal/modules/environment/types"
)

// DateLayout is the accepted calendar date format.
const DateLayout = time.DateOnly

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q (expected YYYY-MM-DD)", ErrInvalidInput, s)
	}
	return t, nil
}

// ParseRange parses start and end, falling back to the matching field of def
// when a value is blank. It does not reject inverted ranges.
func ParseRange(start, end string, def types.TimeRange) (types.TimeRange, error) {
	r := def
	if strings.TrimSpace(start) != "" {
		t, err := ParseDate(start)
		if err != nil {
			return types.TimeRange{}, fmt.Errorf("start: %w", err)
		}
		r.Start = t
	}
	if strings.TrimSpace(end) != "" {
		t, err := ParseDate(end)
		if err != nil {
			return types.TimeRange{}, fmt.Errorf("end: %w", err)
		}
		r.End = t
	}
	return r, nil
}

// CheckSpan rejects ranges covering more than maxDays days. A non-positive
// maxDays disables the check.
func CheckSpan(r types.TimeRange, maxDays int) error {
	if maxDays > 0 && r.Days() > maxDays {
		return fmt.Errorf("%w: range covers %d days (max %d)", ErrInvalidInput, r.Days(), maxDays)
	}
	return nil
}

// ParseMetric resolves a metric by key ("sound") or label ("Sound Level (dB)"),
// case-insensitively.
func ParseMetric(s string) (types.Metric, error) {
	want := strings.TrimSpace(s)
	for _, m := range types.Metrics {
		if strings.EqualFold(want, m.Key()) || strings.EqualFold(want, m.Label()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, s)
}

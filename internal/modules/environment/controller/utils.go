package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"environapi/internal/modules/environment/trend"
	"environapi/internal/modules/environment/types"
)

const invertedRangeWarning = "Start date cannot be after the end date!"

// selection is one parsed set of dashboard filters.
type selection struct {
	Range    types.TimeRange
	Metric   types.Metric
	Location string
}

// rawSelection holds the filter values as submitted, so a rejected form can be
// re-rendered with what the user typed.
type rawSelection struct {
	Metric   string
	Location string
	Start    string
	End      string
}

func readSelection(v url.Values) rawSelection {
	return rawSelection{
		Metric:   strings.TrimSpace(v.Get("metric")),
		Location: strings.TrimSpace(v.Get("location")),
		Start:    strings.TrimSpace(v.Get("start")),
		End:      strings.TrimSpace(v.Get("end")),
	}
}

// encode keeps only the non-blank filters.
func (s rawSelection) encode() string {
	v := url.Values{}
	for k, val := range map[string]string{"metric": s.Metric, "location": s.Location, "start": s.Start, "end": s.End} {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v.Encode()
}

func (c *environmentControllerImpl) parseSelection(raw rawSelection) (selection, error) {
	sel := selection{Metric: types.MetricTemperature}

	if raw.Metric != "" {
		m, err := trend.ParseMetric(raw.Metric)
		if err != nil {
			return selection{}, err
		}
		sel.Metric = m
	}

	loc, err := c.resolveLocation(raw.Location)
	if err != nil {
		return selection{}, err
	}
	sel.Location = loc

	r, err := trend.ParseRange(raw.Start, raw.End, c.defaults)
	if err != nil {
		return selection{}, err
	}
	if err := trend.CheckSpan(r, c.maxDays); err != nil {
		return selection{}, err
	}
	sel.Range = r
	return sel, nil
}

// resolveLocation defaults to the first configured location. Locations are
// labels only; they never change the generated data.
func (c *environmentControllerImpl) resolveLocation(name string) (string, error) {
	if name == "" {
		if len(c.locations) == 0 {
			return "", nil
		}
		return c.locations[0], nil
	}
	for _, l := range c.locations {
		if l == name {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown location %q", trend.ErrInvalidInput, name)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, trend.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, trend.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

package controller

import (
	"bytes"
	"log/slog"
	"net/http"

	"environapi/internal/modules/environment/service"
	"environapi/internal/modules/environment/trend"
	"environapi/internal/modules/environment/types"
	"environapi/internal/modules/environment/views"
	"environapi/internal/utils"
)

func (c *environmentControllerImpl) handleDashboard(w http.ResponseWriter, r *http.Request) {
	raw := readSelection(r.URL.Query())
	data := c.dashboardData(raw)
	status := http.StatusOK

	sel, err := c.parseSelection(raw)
	if err != nil {
		status = statusFor(err)
		data.Analytics = &views.AnalyticsData{Error: err.Error(), Refresh: data.Refresh}
	} else {
		data.Metrics = c.metricOptions(sel.Metric.Key())
		data.Locations = c.locationOptions(sel.Location)
		res, err := c.service.Dashboard(service.DashboardParams{
			Range:    sel.Range,
			Metric:   sel.Metric,
			Location: sel.Location,
			Refresh:  data.Refresh,
		})
		if err != nil {
			slog.Error("dashboard: pipeline failed", "error", err)
			utils.WriteError(w, statusFor(err), err.Error())
			return
		}
		data.Analytics = buildAnalytics(res)
	}

	var buf bytes.Buffer
	if err := views.RenderDashboard(&buf, data); err != nil {
		slog.Error("dashboard template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	utils.WriteHTML(w, status, &buf)
}

// handleAnalyticsPartial serves the HTMX fragment. Rejected input is rendered
// as an error fragment with 200, since htmx does not swap 4xx responses.
func (c *environmentControllerImpl) handleAnalyticsPartial(w http.ResponseWriter, r *http.Request) {
	refresh := c.service.RefreshToggle().Value()

	var data *views.AnalyticsData
	sel, err := c.parseSelection(readSelection(r.URL.Query()))
	if err != nil {
		slog.Debug("analytics partial: input rejected", "error", err)
		data = &views.AnalyticsData{Error: err.Error(), Refresh: refresh}
	} else {
		res, err := c.service.Dashboard(service.DashboardParams{
			Range:    sel.Range,
			Metric:   sel.Metric,
			Location: sel.Location,
			Refresh:  refresh,
		})
		if err != nil {
			slog.Error("analytics partial: pipeline failed", "error", err)
			utils.WriteError(w, statusFor(err), err.Error())
			return
		}
		data = buildAnalytics(res)
	}

	var buf bytes.Buffer
	if err := views.RenderAnalyticsPartial(&buf, data); err != nil {
		slog.Error("analytics partial render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render")
		return
	}
	utils.WriteHTML(w, http.StatusOK, &buf)
}

func (c *environmentControllerImpl) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid form")
		return
	}
	refresh := c.service.RefreshToggle().Toggle()
	slog.Debug("refresh toggled", "refresh", refresh)

	if wantsJSON(r) {
		utils.WriteJSON(w, http.StatusOK, map[string]bool{"refresh": refresh})
		return
	}
	target := "/"
	if q := readSelection(r.Form).encode(); q != "" {
		target += "?" + q
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (c *environmentControllerImpl) handleMetrics(w http.ResponseWriter, r *http.Request) {
	opts := make([]types.MetricOption, 0, len(types.Metrics))
	for _, m := range types.Metrics {
		opts = append(opts, m.Option())
	}
	utils.WriteJSON(w, http.StatusOK, opts)
}

func (c *environmentControllerImpl) handleLocations(w http.ResponseWriter, r *http.Request) {
	locs := make([]types.Location, 0, len(c.locations))
	for _, name := range c.locations {
		locs = append(locs, types.Location{Name: name})
	}
	utils.WriteJSON(w, http.StatusOK, locs)
}

func (c *environmentControllerImpl) handleTrend(w http.ResponseWriter, r *http.Request) {
	sel, err := c.parseSelection(readSelection(r.URL.Query()))
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, c.service.Table(sel.Range))
}

type seriesResponse struct {
	Metric   types.MetricOption `json:"metric"`
	Location string             `json:"location"`
	Range    types.TimeRange    `json:"range"`
	Points   types.Series       `json:"points"`
}

func (c *environmentControllerImpl) handleSeries(w http.ResponseWriter, r *http.Request) {
	sel, err := c.parseSelection(readSelection(r.URL.Query()))
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	series, err := c.service.Series(sel.Range, sel.Metric)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, seriesResponse{
		Metric:   sel.Metric.Option(),
		Location: sel.Location,
		Range:    sel.Range,
		Points:   series,
	})
}

type summaryResponse struct {
	Metric   types.MetricOption `json:"metric"`
	Location string             `json:"location"`
	Range    types.TimeRange    `json:"range"`
	Points   int                `json:"points"`
	Stats    types.SummaryStats `json:"stats"`
	Rows     []types.SummaryRow `json:"rows"`
}

func (c *environmentControllerImpl) handleSummary(w http.ResponseWriter, r *http.Request) {
	sel, err := c.parseSelection(readSelection(r.URL.Query()))
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	series, stats, err := c.service.Summary(sel.Range, sel.Metric)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, summaryResponse{
		Metric:   sel.Metric.Option(),
		Location: sel.Location,
		Range:    sel.Range,
		Points:   len(series),
		Stats:    stats,
		Rows:     stats.Rows(),
	})
}

func (c *environmentControllerImpl) handleChart(w http.ResponseWriter, r *http.Request) {
	sel, err := c.parseSelection(readSelection(r.URL.Query()))
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	series, err := c.service.Series(sel.Range, sel.Metric)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.NewChartSpec(series, sel.Metric))
}

// dashboardData fills the sidebar from the raw filters. Start and End fall
// back to the configured defaults when blank.
func (c *environmentControllerImpl) dashboardData(raw rawSelection) *views.DashboardData {
	start, end := raw.Start, raw.End
	if start == "" {
		start = c.defaults.Start.Format(trend.DateLayout)
	}
	if end == "" {
		end = c.defaults.End.Format(trend.DateLayout)
	}
	return &views.DashboardData{
		Metrics:   c.metricOptions(raw.Metric),
		Locations: c.locationOptions(raw.Location),
		Start:     start,
		End:       end,
		Refresh:   c.service.RefreshToggle().Value(),
	}
}

func (c *environmentControllerImpl) metricOptions(selected string) []views.SelectOption {
	if selected == "" {
		selected = types.MetricTemperature.Key()
	}
	opts := make([]views.SelectOption, 0, len(types.Metrics))
	for _, m := range types.Metrics {
		opts = append(opts, views.SelectOption{Value: m.Key(), Label: m.Label(), Selected: m.Key() == selected})
	}
	return opts
}

func (c *environmentControllerImpl) locationOptions(selected string) []views.SelectOption {
	if selected == "" && len(c.locations) > 0 {
		selected = c.locations[0]
	}
	opts := make([]views.SelectOption, 0, len(c.locations))
	for _, l := range c.locations {
		opts = append(opts, views.SelectOption{Value: l, Label: l, Selected: l == selected})
	}
	return opts
}

func buildAnalytics(res service.DashboardResult) *views.AnalyticsData {
	p := res.Params
	data := &views.AnalyticsData{
		MetricKey:   p.Metric.Key(),
		MetricLabel: p.Metric.Label(),
		Location:    p.Location,
		Start:       p.Range.Start.Format(trend.DateLayout),
		End:         p.Range.End.Format(trend.DateLayout),
		Points:      len(res.Series),
		Refresh:     p.Refresh,
	}
	if res.Inverted {
		data.Warning = invertedRangeWarning
	}
	if res.Stats == nil {
		data.Empty = true
		return data
	}
	data.Rows = res.Stats.Rows()
	data.Chart = views.NewChartSpec(res.Series, p.Metric)
	return data
}

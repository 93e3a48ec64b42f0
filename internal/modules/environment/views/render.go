package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"sync"

	"environapi/internal/modules/environment/types"
)

//go:embed templates
var viewsFS embed.FS

var (
	tmplMu        sync.RWMutex
	dashboardTmpl *template.Template
)

var errNotLoaded = errors.New("dashboard template not loaded: call views.LoadTemplates during startup")

// loadTemplatesFromFS loads dashboard templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	tmplMu.Lock()
	dashboardTmpl = tmpl
	tmplMu.Unlock()
	return nil
}

// LoadTemplates loads embedded dashboard templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// Ready reports whether templates have been loaded.
func Ready() error {
	if current() == nil {
		return errNotLoaded
	}
	return nil
}

func current() *template.Template {
	tmplMu.RLock()
	defer tmplMu.RUnlock()
	return dashboardTmpl
}

// SelectOption is one <option> of a sidebar select.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// AnalyticsData is the view model for the chart and analytics table fragment.
type AnalyticsData struct {
	MetricKey   string
	MetricLabel string
	Location    string
	Start       string
	End         string
	Points      int
	Rows        []types.SummaryRow
	Chart       ChartSpec

	// Refresh echoes the refresh toggle the fragment was rendered with.
	Refresh bool

	// Error replaces the fragment body when input was rejected.
	Error string
	// Warning is a non-fatal notice, e.g. an inverted date range.
	Warning string
	// Empty is set when there was nothing to summarize.
	Empty bool
}

// DashboardData is the view model for the full page.
type DashboardData struct {
	Metrics   []SelectOption
	Locations []SelectOption
	Start     string
	End       string
	Refresh   bool
	// Analytics always renders inside #analytics, so later HTMX swaps have a
	// target even after an error.
	Analytics *AnalyticsData
}

func RenderDashboard(w io.Writer, data *DashboardData) error {
	tmpl := current()
	if tmpl == nil {
		return errNotLoaded
	}
	return tmpl.ExecuteTemplate(w, "dashboard.html", data)
}

// RenderAnalyticsPartial executes only the analytics fragment into w.
// Use for HTMX fragment refresh.
func RenderAnalyticsPartial(w io.Writer, data *AnalyticsData) error {
	tmpl := current()
	if tmpl == nil {
		return errNotLoaded
	}
	return tmpl.ExecuteTemplate(w, "analytics.html", data)
}

package controller

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"environapi/internal/config"
	"environapi/internal/modules/environment/service"
	"environapi/internal/modules/environment/trend"
	"environapi/internal/modules/environment/types"
	"environapi/internal/modules/environment/views"
)

type constSource struct{ f float64 }

func (c constSource) Uniform(lo, hi float64) float64 { return lo + c.f*(hi-lo) }

func TestMain(m *testing.M) {
	if err := views.LoadTemplates(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testConfig() config.Config {
	return config.Config{
		Locations:    []string{"Tech 1", "Tech 2"},
		DefaultStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DefaultEnd:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		MaxRangeDays: 31,
	}
}

func newTestMux(t *testing.T) (*http.ServeMux, *service.Service) {
	t.Helper()
	svc := service.NewService(slog.New(slog.DiscardHandler),
		service.WithRandomSource(func() trend.RandomSource { return constSource{f: 0.5} }))
	mux := http.NewServeMux()
	NewEnvironmentController(svc, testConfig()).RegisterRoutes(mux)
	return mux, svc
}

func serve(mux http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func Test_handleDashboard(t *testing.T) {
	mux, _ := newTestMux(t)

	t.Run("renders defaults", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("Content-Type = %q; want text/html", ct)
		}
		body := rec.Body.String()
		for _, want := range []string{
			"Selected Metric: Temperature (°C)",
			"Location: Tech 1",
			"Displaying data from 2024-01-01 to 2024-01-02",
			"Analytics Summary",
			`<option value="temperature" selected>`,
			`data-refresh="false"`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
	})

	t.Run("honours filters", func(t *testing.T) {
		q := url.Values{"metric": {"humidity"}, "location": {"Tech 2"}, "start": {"2024-03-01"}, "end": {"2024-03-01"}}
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/?"+q.Encode(), nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		body := rec.Body.String()
		for _, want := range []string{
			"Selected Metric: Humidity (%)",
			"Location: Tech 2",
			"Displaying data from 2024-03-01 to 2024-03-01",
			`<option value="humidity" selected>`,
			`<option value="Tech 2" selected>`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
	})

	t.Run("inverted range warns and shows no data", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/?start=2024-01-05&end=2024-01-01", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		body := rec.Body.String()
		if !strings.Contains(body, invertedRangeWarning) {
			t.Errorf("body missing inverted range warning")
		}
		if !strings.Contains(body, "No data in the selected range.") {
			t.Errorf("body missing empty-data notice")
		}
	})

	t.Run("invalid date renders error banner with 400", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/?start=2024-13-01", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusBadRequest)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `class="alert alert-error"`) {
			t.Errorf("body missing error banner")
		}
		if !strings.Contains(body, `value="2024-13-01"`) {
			t.Errorf("body should keep the submitted start date")
		}
	})

	t.Run("unknown location keeps the swap target", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/?location=Nowhere", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusBadRequest)
		}
		body := rec.Body.String()
		target := strings.Index(body, `<div id="analytics">`)
		if target < 0 {
			t.Fatal("error page must keep #analytics for later HTMX swaps")
		}
		banner := strings.Index(body, `class="alert alert-error"`)
		if banner < target {
			t.Error("error banner should render inside #analytics")
		}
		if !strings.Contains(body[target:], "Nowhere") {
			t.Error("banner should name the rejected location")
		}
	})

	t.Run("returns 404 for other paths", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func Test_handleAnalyticsPartial(t *testing.T) {
	mux, _ := newTestMux(t)

	t.Run("renders fragment", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/partials/analytics?metric=sound", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		body := rec.Body.String()
		if strings.Contains(body, "<!DOCTYPE html>") {
			t.Error("partial should not include the page layout")
		}
		if !strings.Contains(body, "Selected Metric: Sound Level (dB)") {
			t.Errorf("body missing metric label")
		}
	})

	t.Run("rejected input renders an error fragment htmx will swap", func(t *testing.T) {
		tests := []struct {
			name   string
			target string
			want   string
		}{
			{"span too long", "/partials/analytics?start=2020-01-01&end=2024-01-01", "range covers 1462 days (max 31)"},
			{"unknown metric", "/partials/analytics?metric=pressure", "pressure"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := serve(mux, httptest.NewRequest(http.MethodGet, tt.target, nil))

				if rec.Code != http.StatusOK {
					t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
				}
				if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
					t.Errorf("Content-Type = %q; want text/html", ct)
				}
				body := rec.Body.String()
				if !strings.Contains(body, `class="alert alert-error"`) {
					t.Errorf("body missing error banner: %s", body)
				}
				if !strings.Contains(body, tt.want) {
					t.Errorf("body missing %q", tt.want)
				}
				if strings.Contains(body, "Selected Metric") {
					t.Error("error fragment should not render the selection header")
				}
			})
		}
	})

	t.Run("echoes refresh flag", func(t *testing.T) {
		mux, svc := newTestMux(t)
		svc.RefreshToggle().Toggle()

		for _, target := range []string{"/partials/analytics", "/partials/analytics?location=Gym"} {
			rec := serve(mux, httptest.NewRequest(http.MethodGet, target, nil))
			if !strings.Contains(rec.Body.String(), `<section class="analytics" data-refresh="true">`) {
				t.Errorf("%s: fragment should carry data-refresh=\"true\"", target)
			}
		}
	})
}

func Test_handleRefresh(t *testing.T) {
	t.Run("redirects back with filters", func(t *testing.T) {
		mux, svc := newTestMux(t)
		form := url.Values{"metric": {"sound"}, "start": {"2024-01-01"}, "end": {"2024-01-03"}}
		req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := serve(mux, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusSeeOther)
		}
		if got, want := rec.Header().Get("Location"), "/?end=2024-01-03&metric=sound&start=2024-01-01"; got != want {
			t.Errorf("Location = %q; want %q", got, want)
		}
		if !svc.RefreshToggle().Value() {
			t.Error("refresh flag should be set after one toggle")
		}

		page := serve(mux, httptest.NewRequest(http.MethodGet, "/", nil))
		if !strings.Contains(page.Body.String(), `data-refresh="true"`) {
			t.Error("dashboard should echo the toggled refresh flag")
		}
	})

	t.Run("returns JSON state when asked", func(t *testing.T) {
		mux, _ := newTestMux(t)
		for _, want := range []bool{true, false} {
			req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
			req.Header.Set("Accept", "application/json")
			rec := serve(mux, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
			}
			var body map[string]bool
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["refresh"] != want {
				t.Errorf("refresh = %v; want %v", body["refresh"], want)
			}
		}
	})

	t.Run("GET is not allowed", func(t *testing.T) {
		mux, _ := newTestMux(t)
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/refresh", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}

func Test_handleMetricsAndLocations(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	var metrics []types.MetricOption
	if err := json.NewDecoder(rec.Body).Decode(&metrics); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(metrics) != len(types.Metrics) || metrics[0].Key != "temperature" || metrics[2].Unit != "dB" {
		t.Errorf("metrics = %+v", metrics)
	}

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/api/locations", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("locations status = %d", rec.Code)
	}
	var locs []types.Location
	if err := json.NewDecoder(rec.Body).Decode(&locs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(locs) != 2 || locs[1].Name != "Tech 2" {
		t.Errorf("locations = %+v", locs)
	}
}

func Test_handleTrend(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/trend?start=2024-01-01&end=2024-01-01", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	var table types.TrendTable
	if err := json.NewDecoder(rec.Body).Decode(&table); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(table) != trend.TicksPerDay {
		t.Fatalf("len = %d; want %d", len(table), trend.TicksPerDay)
	}
	if !table[0].Time.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first tick = %v", table[0].Time)
	}

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/api/trend?start=2024-01-01&end=2024-06-01", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("over-long range status = %d; want %d", rec.Code, http.StatusBadRequest)
	}
}

func Test_handleSeries(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/series?metric=light&start=2024-01-01&end=2024-01-01", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	var body seriesResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Metric.Key != "light" || body.Location != "Tech 1" {
		t.Errorf("body = %+v", body)
	}
	if len(body.Points) != trend.TicksPerDay {
		t.Fatalf("len(points) = %d; want %d", len(body.Points), trend.TicksPerDay)
	}
	// 03:00 is the 13th tick.
	if body.Points[12].Value != 100 {
		t.Errorf("03:00 light = %v; want 100", body.Points[12].Value)
	}
}

func Test_handleSummary(t *testing.T) {
	mux, _ := newTestMux(t)

	t.Run("ok", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/summary?metric=temperature&start=2024-01-01&end=2024-01-01", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		var body summaryResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		// Midpoint source: night ticks 16, day ticks 21, half and half.
		if body.Stats.Max != 21 || body.Stats.Min != 16 || body.Stats.Mean != 18.5 {
			t.Errorf("stats = %+v", body.Stats)
		}
		if body.Points != trend.TicksPerDay {
			t.Errorf("points = %d", body.Points)
		}
		want := []types.SummaryRow{
			{Statistic: "Max Value", Value: "21.00"},
			{Statistic: "Min Value", Value: "16.00"},
			{Statistic: "Average Value", Value: "18.50"},
		}
		for i, row := range want {
			if body.Rows[i] != row {
				t.Errorf("rows[%d] = %+v; want %+v", i, body.Rows[i], row)
			}
		}
	})

	t.Run("inverted range is 422", func(t *testing.T) {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/summary?start=2024-01-02&end=2024-01-01", nil))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnprocessableEntity)
		}
		if body := decodeError(t, rec); !strings.Contains(body["message"], "empty") {
			t.Errorf("message = %q", body["message"])
		}
	})
}

func Test_handleChart(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/chart?metric=sound&start=2024-01-01&end=2024-01-01", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	var spec map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec["title"] != "Sound Level (dB) Over Time" {
		t.Errorf("title = %v", spec["title"])
	}
	values := spec["data"].(map[string]any)["values"].([]any)
	if len(values) != trend.TicksPerDay {
		t.Errorf("len(values) = %d; want %d", len(values), trend.TicksPerDay)
	}
}

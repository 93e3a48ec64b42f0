package controller

import (
	"net/http"

	"environapi/internal/config"
	"environapi/internal/modules/environment/service"
	"environapi/internal/modules/environment/types"
)

type EnvironmentController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type environmentControllerImpl struct {
	service   *service.Service
	locations []string
	defaults  types.TimeRange
	maxDays   int
}

func NewEnvironmentController(svc *service.Service, cfg config.Config) EnvironmentController {
	return &environmentControllerImpl{
		service:   svc,
		locations: cfg.Locations,
		defaults:  types.TimeRange{Start: cfg.DefaultStart, End: cfg.DefaultEnd},
		maxDays:   cfg.MaxRangeDays,
	}
}

func (c *environmentControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleDashboard)
	mux.HandleFunc("GET /partials/analytics", c.handleAnalyticsPartial)
	mux.HandleFunc("POST /refresh", c.handleRefresh)

	mux.HandleFunc("GET /api/metrics", c.handleMetrics)
	mux.HandleFunc("GET /api/locations", c.handleLocations)
	mux.HandleFunc("GET /api/trend", c.handleTrend)
	mux.HandleFunc("GET /api/series", c.handleSeries)
	mux.HandleFunc("GET /api/summary", c.handleSummary)
	mux.HandleFunc("GET /api/chart", c.handleChart)
}

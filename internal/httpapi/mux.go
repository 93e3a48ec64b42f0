package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux returns a mux with /healthz and /metrics registered. Feature modules
// add their own routes.
func NewMux(ready ReadinessCheck) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, ready)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

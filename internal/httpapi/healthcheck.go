package httpapi

import (
	"log/slog"
	"net/http"

	"environapi/internal/utils"
)

// ReadinessCheck reports whether the server can render pages.
type ReadinessCheck func() error

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	ready ReadinessCheck
}

func NewHealthchecker(ready ReadinessCheck) healthchecker {
	return &healthcheckerImpl{ready: ready}
}

func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(); err != nil {
			slog.Error("readiness check failed", "error", err)
			utils.WriteError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func registerHealthcheck(mux *http.ServeMux, ready ReadinessCheck) {
	healthchecker := NewHealthchecker(ready)
	mux.HandleFunc("GET /healthz", healthchecker.handleHealthz)
}

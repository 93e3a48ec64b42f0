package httpapi

import (
	"net/http"

	"environapi/internal/config"
)

func NewServer(cfg config.Config, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           Handler(mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// Handler wraps mux with the request id and request log middleware.
func Handler(mux *http.ServeMux) http.Handler {
	return requestID(requestLogger(mux))
}

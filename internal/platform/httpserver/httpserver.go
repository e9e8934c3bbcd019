package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with the service's timeouts. WriteTimeout leaves
// room for a finalize run against a slow staff service.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
}

package monitor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readHeaderTimeout = 3 * time.Second

// Server serves Prometheus metrics on a configurable path and the live
// decoded-packet websocket feed at "/ws" on one listen address.
type Server struct {
	httpServer *http.Server
}

// NewServer builds a Server; metricsPath defaults to "/metrics" when
// empty. The websocket feed is always served at "/ws".
func NewServer(addr, metricsPath string, hub *Hub, reg *prometheus.Registry) *Server {
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/ws", hub)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// ListenAndServe blocks serving until the listener fails or Shutdown is
// called, at which point it returns http.ErrServerClosed.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) String() string {
	return fmt.Sprintf("monitor server on %s", s.httpServer.Addr)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService serves a Prometheus registry at /metrics.
type MetricsService struct {
	srv *http.Server
}

// NewMetricsService returns a MetricsService listening on addr.
//
// Precondition: addr is a host:port; gatherer is non-nil.
func NewMetricsService(addr string, gatherer prometheus.Gatherer) *MetricsService {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &MetricsService{srv: &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Handler returns the HTTP handler, for in-process testing.
func (m *MetricsService) Handler() http.Handler { return m.srv.Handler }

// Start implements Service. A clean Stop is not an error.
func (m *MetricsService) Start() error {
	if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop implements Service, draining in-flight scrapes for up to five seconds.
func (m *MetricsService) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.srv.Shutdown(ctx)
}

package metrics

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CreateMetricsServer serves the given collectors on addr under /metrics. The listener is bound
// before returning so that address errors surface to the caller.
func CreateMetricsServer(addr string, cs ...prometheus.Collector) (*http.Server, error) {
	registry := prometheus.NewRegistry()
	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return nil, errors.WithMessage(err, "failed to register collector")
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to bind metrics server")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server stopped", "error", err)
		}
	}()

	slog.Info("Metrics server listening", "addr", server.Addr)
	return server, nil
}

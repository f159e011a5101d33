package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Leg names used as the "leg" label of SaveOutcomes.
const (
	LegLocal  = "local"
	LegRemote = "remote"
)

var (
	// Registry holds the builder's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	// SaveOutcomes counts save attempts per persistence leg and outcome.
	SaveOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "builder",
			Name:      "saves_total",
			Help:      "Page save attempts by persistence leg and status.",
		},
		[]string{"leg", "status"},
	)

	remoteDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "builder",
			Name:      "remote_duration_seconds",
			Help:      "Duration of remote page-section updates.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
		},
	)

	historyDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "storefront",
			Subsystem: "builder",
			Name:      "history_depth",
			Help:      "Number of undo snapshots currently held.",
		},
	)
)

func init() {
	Registry.MustRegister(
		SaveOutcomes,
		remoteDuration,
		historyDepth,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordSave counts one outcome of a persistence leg.
func RecordSave(leg, status string) {
	if status == "" {
		status = "unknown"
	}
	SaveOutcomes.WithLabelValues(leg, status).Inc()
}

// ObserveRemote records how long a remote update took.
func ObserveRemote(d time.Duration) {
	if d <= 0 {
		d = time.Millisecond
	}
	remoteDuration.Observe(d.Seconds())
}

func SetHistoryDepth(n int) {
	historyDepth.Set(float64(n))
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

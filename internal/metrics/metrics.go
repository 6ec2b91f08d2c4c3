// Package metrics exposes the solver's search progress as Prometheus
// metrics. It implements sat.StatsRecorder so the CLI can attach it to a
// Solver without the solver package depending on Prometheus.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder tracks decisions, conflicts, propagations and the current
// decision level for one solver run.
type Recorder struct {
	decisionsTotal    prometheus.Counter
	conflictsTotal    prometheus.Counter
	propagationsTotal prometheus.Counter
	decisionLevel     prometheus.Gauge
}

// NewRecorder registers a fresh set of metrics against reg. Callers
// typically pass prometheus.NewRegistry() so that repeated runs (e.g. in
// tests) don't collide on the default global registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		decisionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "cdclsat_decisions_total",
			Help: "Total number of branching decisions made by the solver.",
		}),
		conflictsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "cdclsat_conflicts_total",
			Help: "Total number of conflicts encountered by the solver.",
		}),
		propagationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "cdclsat_propagations_total",
			Help: "Total number of unit propagations performed by the solver.",
		}),
		decisionLevel: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cdclsat_decision_level",
			Help: "Current decision level of the solver.",
		}),
	}
}

// Decision implements sat.StatsRecorder.
func (r *Recorder) Decision() {
	r.decisionsTotal.Inc()
	r.decisionLevel.Inc()
}

// Conflict implements sat.StatsRecorder.
func (r *Recorder) Conflict() {
	r.conflictsTotal.Inc()
}

// Propagation implements sat.StatsRecorder.
func (r *Recorder) Propagation() {
	r.propagationsTotal.Inc()
}

// Backtrack implements sat.StatsRecorder.
func (r *Recorder) Backtrack(level int) {
	r.decisionLevel.Set(float64(level))
}

// Serve starts an HTTP server exposing reg on /metrics at addr. It blocks
// until ctx is canceled, then shuts the server down with a short grace
// period.
func Serve(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evolve_evaluations_total",
			Help: "Total number of objective function evaluations",
		},
		[]string{"function"},
	)

	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evolve_generations_total",
			Help: "Total number of generations evolved",
		},
		[]string{"algorithm"},
	)

	bestFitness = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evolve_best_fitness",
			Help: "Best fitness of the current generation",
		},
		[]string{"run"},
	)

	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evolve_runs_total",
			Help: "Total number of finished runs by termination reason",
		},
		[]string{"algorithm", "reason"},
	)

	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evolve_run_duration_seconds",
			Help:    "Wall-clock duration of finished runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"algorithm"},
	)
)

func init() {
	prometheus.MustRegister(evaluationsTotal)
	prometheus.MustRegister(generationsTotal)
	prometheus.MustRegister(bestFitness)
	prometheus.MustRegister(runsTotal)
	prometheus.MustRegister(runDuration)
}

// Handler serves the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordEvaluations adds n objective evaluations for function.
func RecordEvaluations(function string, n int) {
	evaluationsTotal.WithLabelValues(function).Add(float64(n))
}

// RecordGeneration counts one generation and publishes the run's current
// best fitness.
func RecordGeneration(algorithm, run string, fitness float64) {
	generationsTotal.WithLabelValues(algorithm).Inc()
	bestFitness.WithLabelValues(run).Set(fitness)
}

// RecordRun counts a finished run.
func RecordRun(algorithm, reason string, elapsed time.Duration) {
	runsTotal.WithLabelValues(algorithm, reason).Inc()
	runDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

// ForgetRun drops the per-run gauge once a run is reported.
func ForgetRun(run string) {
	bestFitness.DeleteLabelValues(run)
}

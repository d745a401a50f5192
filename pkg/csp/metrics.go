package csp

import "github.com/prometheus/client_golang/prometheus"

// Metrics is an optional set of Prometheus collectors for solve-time
// instrumentation. A nil *Metrics is always safe to use — every method
// on it no-ops — so callers that don't care about metrics can leave it
// unset.
type Metrics struct {
	nodesVisited     prometheus.Counter
	backtracks       prometheus.Counter
	propagations     prometheus.Counter
	solveDuration    prometheus.Histogram
	solveOutcomes    *prometheus.CounterVec
	componentsSolved prometheus.Histogram
}

// NewMetrics registers a fresh set of CSP solver collectors against
// reg. Pass prometheus.NewRegistry() for an isolated registry in
// tests, or prometheus.DefaultRegisterer for a process-wide one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		nodesVisited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csp",
			Subsystem: "solver",
			Name:      "nodes_visited_total",
			Help:      "Total search-tree nodes visited across all solves.",
		}),
		backtracks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csp",
			Subsystem: "solver",
			Name:      "backtracks_total",
			Help:      "Total backtracks across all solves.",
		}),
		propagations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csp",
			Subsystem: "solver",
			Name:      "propagation_calls_total",
			Help:      "Total inference (AC-3.1 + AllDiff) invocations across all solves.",
		}),
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "csp",
			Subsystem: "solver",
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock duration of a full Solve call.",
			Buckets:   prometheus.DefBuckets,
		}),
		solveOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "csp",
			Subsystem: "solver",
			Name:      "solve_outcomes_total",
			Help:      "Solve outcomes by result (satisfiable, unsatisfiable).",
		}, []string{"result"}),
		componentsSolved: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "csp",
			Subsystem: "solver",
			Name:      "decomposed_components",
			Help:      "Number of connected components a solved problem split into.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
	}
	reg.MustRegister(
		m.nodesVisited,
		m.backtracks,
		m.propagations,
		m.solveDuration,
		m.solveOutcomes,
		m.componentsSolved,
	)
	return m
}

func (m *Metrics) observeSearch(stats SearchStats) {
	if m == nil {
		return
	}
	m.nodesVisited.Add(float64(stats.NodesVisited))
	m.backtracks.Add(float64(stats.Backtracks))
	m.propagations.Add(float64(stats.PropagationCalls))
}

func (m *Metrics) observeSolve(seconds float64, satisfiable bool, numComponents int) {
	if m == nil {
		return
	}
	m.solveDuration.Observe(seconds)
	m.componentsSolved.Observe(float64(numComponents))
	result := "unsatisfiable"
	if satisfiable {
		result = "satisfiable"
	}
	m.solveOutcomes.WithLabelValues(result).Inc()
}

package csp

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gitrdm/reginsolve/internal/worker"
)

// SolveOption configures a Solve call.
type SolveOption func(*solveConfig)

type solveConfig struct {
	parallel   bool
	maxWorkers int
	metrics    *Metrics
	logger     *logrus.Logger
}

// WithParallelSolve dispatches one task per decomposed connected
// component onto a bounded worker pool (see WithMaxWorkers) instead of
// solving them one after another. Harmless (and
// pointless) on a problem that decomposes into a single component.
func WithParallelSolve(v bool) SolveOption {
	return func(c *solveConfig) { c.parallel = v }
}

// WithMaxWorkers bounds the worker pool used for parallel component
// solving; <= 0 defaults to runtime.NumCPU.
func WithMaxWorkers(n int) SolveOption {
	return func(c *solveConfig) { c.maxWorkers = n }
}

// WithSolveMetrics attaches a Prometheus metrics sink; nil (the
// default) disables instrumentation.
func WithSolveMetrics(m *Metrics) SolveOption {
	return func(c *solveConfig) { c.metrics = m }
}

// WithLogger overrides the structured logger used for orchestration
// events. The default is a plain logrus.New() at InfoLevel.
func WithLogger(l *logrus.Logger) SolveOption {
	return func(c *solveConfig) { c.logger = l }
}

// Result is the outcome of a Solve call.
type Result[K comparable, V comparable] struct {
	Solution    map[K]V
	Satisfiable bool
	Stats       SearchStats
	Components  int
}

// Solve orchestrates a full solve of p: initial AC-3.1 + AllDiff
// inference, connected-component decomposition, backtracking search
// over each component (optionally in parallel), and result merging.
func Solve[K comparable, V comparable](p *Problem[K, V], opts ...SolveOption) Result[K, V] {
	cfg := solveConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logrus.New()
		cfg.logger.SetLevel(logrus.InfoLevel)
	}
	log := cfg.logger.WithFields(logrus.Fields{
		"vars": p.NumVars(),
		"vals": p.NumVals(),
	})

	start := time.Now()
	log.Info("solve: starting")

	inf := NewInference[K, V](p)
	domains, ok := inf.RunFull(p.Domains().CloneAll())
	if domains == nil {
		log.Info("solve: infeasible after initial propagation")
		cfg.metrics.observeSolve(time.Since(start).Seconds(), false, 0)
		return Result[K, V]{Satisfiable: false}
	}
	_ = ok

	ctx := ctxFromDomains(domains)
	components := Decompose(p)
	log.WithField("components", len(components)).Info("solve: decomposed")

	var (
		finalAssignment = ctx.Assignment.Clone()
		stats           SearchStats
		satisfiable     = true
	)

	if len(components) <= 1 || !cfg.parallel {
		scope := FullScope(p.NumVars())
		sol, found := Search(p, inf, scope, domains, ctx, &stats)
		if !found {
			satisfiable = false
		} else {
			finalAssignment = sol
		}
	} else {
		satisfiable, finalAssignment, stats = solveComponentsParallel(p, inf, domains, ctx, components, cfg)
	}

	cfg.metrics.observeSearch(stats)
	cfg.metrics.observeSolve(time.Since(start).Seconds(), satisfiable, len(components))

	if !satisfiable {
		log.WithFields(logrus.Fields{
			"nodes":      stats.NodesVisited,
			"backtracks": stats.Backtracks,
		}).Info("solve: unsatisfiable")
		return Result[K, V]{Satisfiable: false, Stats: stats, Components: len(components)}
	}

	log.WithFields(logrus.Fields{
		"nodes":      stats.NodesVisited,
		"backtracks": stats.Backtracks,
		"duration":   time.Since(start),
	}).Info("solve: satisfiable")

	return Result[K, V]{
		Solution:    p.AsSolution(finalAssignment),
		Satisfiable: true,
		Stats:       stats,
		Components:  len(components),
	}
}

// compResult is one decomposed component's independent search outcome.
type compResult[V comparable] struct {
	assignment Assignment[V]
	ok         bool
	stats      SearchStats
}

func solveComponentsParallel[K comparable, V comparable](
	p *Problem[K, V],
	inf *Inference[K, V],
	domains DomainSet[V],
	ctx *AssignCtx[V],
	components [][]Var,
	cfg solveConfig,
) (bool, Assignment[V], SearchStats) {
	tasks := make([]func() compResult[V], len(components))
	for i, comp := range components {
		comp := comp
		scope := ScopeMask(p.NumVars(), comp)
		tasks[i] = func() compResult[V] {
			localCtx := &AssignCtx[V]{
				Assignment: ctx.Assignment.Clone(),
				Unassigned: append([]bool(nil), ctx.Unassigned...),
			}
			var localStats SearchStats
			sol, ok := Search(p, inf, scope, domains, localCtx, &localStats)
			return compResult[V]{assignment: sol, ok: ok, stats: localStats}
		}
	}

	pool := worker.New(cfg.maxWorkers)
	defer pool.Shutdown()

	results, err := worker.RunAll(context.Background(), pool, tasks)

	merged := ctx.Assignment.Clone()
	var total SearchStats
	if err != nil {
		return false, merged, total
	}

	satisfiable := true
	for _, r := range results {
		total.NodesVisited += r.stats.NodesVisited
		total.Backtracks += r.stats.Backtracks
		total.PropagationCalls += r.stats.PropagationCalls
		if r.stats.MaxDepthReached > total.MaxDepthReached {
			total.MaxDepthReached = r.stats.MaxDepthReached
		}
		if !r.ok {
			satisfiable = false
			continue
		}
		for x, v := range r.assignment {
			merged[x] = v
		}
	}

	return satisfiable, merged, total
}

// ctxFromDomains builds a fresh search context from a (possibly
// already-propagated) domain set: every singleton domain is treated
// as pre-assigned.
func ctxFromDomains[V comparable](domains DomainSet[V]) *AssignCtx[V] {
	assignment := make(Assignment[V])
	unassigned := make([]bool, len(domains))
	for x, d := range domains {
		if d.IsSingleton() {
			assignment[Var(x)] = d.SingletonValue()
		} else {
			unassigned[x] = true
		}
	}
	return &AssignCtx[V]{Assignment: assignment, Unassigned: unassigned}
}

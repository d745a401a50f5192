// Package csp implements the core of a finite-domain constraint
// satisfaction problem (CSP) solver: depth-first backtracking search
// interleaved with constraint propagation.
//
// The solver alternates two inference procedures to a fixpoint before
// every branching decision:
//
//   - AC-3.1 arc consistency for binary constraints, with a
//     last-support cache that amortizes revision cost across the run.
//   - Régin's bipartite-matching filter for AllDifferent globals,
//     built from Hopcroft–Karp maximum matching plus Tarjan strongly
//     connected components and a free-vertex BFS over the oriented
//     residual graph.
//
// Variable selection uses minimum-remaining-values with a degree
// tie-break; value ordering uses least-constraining-value. Before
// search, the problem is split into connected components of the
// constraint graph (binary constraints plus shared AllDiff scopes),
// which can be solved concurrently.
//
// The package solves satisfaction, not optimisation: Solve returns one
// solution, or an empty map if the problem is infeasible. It does not
// provide a modeling DSL, example problem encodings, or wire formats —
// see internal/puzzles and cmd/csp-solve for those, layered on top of
// this package.
package csp

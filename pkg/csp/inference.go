package csp

// Inference combines AC-3.1 and the Régin AllDiff propagator into one
// fixpoint: run AC-3.1 over the binary arcs, then every AllDiff to its
// local fixpoint, and repeat while either stage reduced a domain.
// Interleaving is required for correctness, not just speed — an
// AllDiff pruning a value can expose a new binary inconsistency and
// vice versa.
type Inference[K comparable, V comparable] struct {
	ac3     *AC3[V]
	allDiff *AllDiffPropagator[V]
}

// NewInference binds an inference engine to a problem's constraint
// store.
func NewInference[K comparable, V comparable](p *Problem[K, V]) *Inference[K, V] {
	return &Inference[K, V]{
		ac3:     NewAC3[K, V](p),
		allDiff: NewAllDiffPropagator[K, V](p),
	}
}

// Run drives domains to a joint AC-3.1 + AllDiff fixpoint, seeding the
// first AC-3.1 pass with seed (the full arc set for a from-scratch
// call, or just the arcs touching a just-assigned variable for
// incremental maintenance during search). Returns (nil, _) as soon as
// any domain empties; the bool result is the "did anything reduce"
// flag and, like the underlying propagators, is unspecified on
// infeasibility — callers must check for a nil domain set, not the
// bool, to detect failure.
func (e *Inference[K, V]) Run(domains DomainSet[V], seed []VarArc) (DomainSet[V], bool) {
	working := domains
	first := true
	anyReduced := false

	for {
		arcs := seed
		if !first {
			arcs = e.ac3.ArcIter()
		}
		first = false

		acOut, acReduced := e.ac3.Propagate(arcs, working)
		if acOut == nil {
			return nil, true
		}
		working = acOut

		adOut, adReduced := e.allDiff.Propagate(working)
		if adOut == nil {
			return nil, true
		}
		working = adOut

		if acReduced || adReduced {
			anyReduced = true
		}
		if !acReduced && !adReduced {
			return working, anyReduced
		}
	}
}

// RunFull seeds a Run with every binary arc in the problem; the
// from-scratch entry point used before search begins.
func (e *Inference[K, V]) RunFull(domains DomainSet[V]) (DomainSet[V], bool) {
	return e.Run(domains, e.ac3.ArcIter())
}

// RunAfterAssign seeds a Run with just the arcs (y, x) for every
// binary neighbour y of the newly assigned variable x — the standard
// MAC (maintaining-arc-consistency) seeding used during backtracking
// search, avoiding a full re-scan of every arc on every assignment.
func (e *Inference[K, V]) RunAfterAssign(domains DomainSet[V], p *Problem[K, V], x Var) (DomainSet[V], bool) {
	var seed []VarArc
	for _, y := range p.Neighbors(x) {
		if _, ok := p.Consts()[y][x]; ok {
			seed = append(seed, VarArc{X: y, Y: x})
		}
	}
	if len(seed) == 0 {
		// No binary neighbours: still run AllDiff, since x may share
		// a global scope with y without a direct binary constraint.
		return e.allDiff.Propagate(domains)
	}
	return e.Run(domains, seed)
}

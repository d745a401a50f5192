package csp

// AC3 implements Zhang & Yap's AC-3.1 arc-consistency algorithm: a
// revision queue over binary-constraint arcs, with a "last support"
// cache so that, across the whole propagation run, each arc is
// revised in amortized O(d) rather than O(d^2).
type AC3[V comparable] struct {
	consts []map[Var]*ConstSet[V]
}

// NewAC3 builds an AC3 propagator bound to a problem's binary
// constraint store.
func NewAC3[K comparable, V comparable](p *Problem[K, V]) *AC3[V] {
	return &AC3[V]{consts: p.Consts()}
}

// ArcIter lists every directed arc (x, y) with a registered binary
// constraint, i.e. the full binary-constraint graph's edge set in
// both directions.
func (a *AC3[V]) ArcIter() []VarArc {
	out := make([]VarArc, 0)
	for x, ys := range a.consts {
		for y := range ys {
			out = append(out, VarArc{X: Var(x), Y: y})
		}
	}
	return out
}

type supportKey[V comparable] struct {
	x Var
	v V
	y Var
}

// Propagate runs AC-3.1 starting from the given arc queue over
// domains, without mutating its input: the returned domain set is an
// independent clone, revised to a fixpoint. If any domain empties,
// it returns (nil, true) — the reduced flag is unspecified on
// infeasibility and callers should ignore it, per the propagator
// contract (a failed propagation never claims anything about whether
// domains changed before the empty one was found).
func (a *AC3[V]) Propagate(arcs []VarArc, domains DomainSet[V]) (DomainSet[V], bool) {
	revised := domains.CloneAll()

	// Stable snapshot of each variable's domain ordering, taken once
	// for this whole propagation run; last-support indices are
	// positions into these fixed slices.
	snapshot := make([][]V, len(domains))
	for i, d := range domains {
		snapshot[i] = d.Values()
	}
	lastIdx := make(map[supportKey[V]]int)

	queue := append([]VarArc(nil), arcs...)
	anyReduced := false

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		x, y := cur.X, cur.Y
		c, ok := a.consts[x][y]
		if !ok {
			continue
		}
		if a.revise(Arc{X: x, Y: y}, &revised[x], &revised[y], snapshot[y], lastIdx, c) {
			anyReduced = true
			if revised[x].IsEmpty() {
				return nil, true
			}
			for z := range a.consts[x] {
				if z != y {
					queue = append(queue, VarArc{X: z, Y: x})
				}
			}
		}
	}

	return revised, anyReduced
}

// revise deletes from dx every value with no remaining support in dy
// under c, consulting and updating the last-support cache for (x,v,y).
// Returns true iff dx changed.
func (a *AC3[V]) revise(arc Arc, dx, dy *Domain[V], ySnapshot []V, lastIdx map[supportKey[V]]int, c BinaryConstraint[V]) bool {
	deleted := false
	for _, v := range dx.Values() {
		k := supportKey[V]{x: arc.X, v: v, y: arc.Y}

		start := 0
		if idx, ok := lastIdx[k]; ok {
			if dy.Contains(ySnapshot[idx]) {
				continue // cached support still present: v stays
			}
			start = idx + 1
		}

		supported := false
		for i := start; i < len(ySnapshot); i++ {
			w := ySnapshot[i]
			if !dy.Contains(w) {
				continue
			}
			if c.Satisfies(arc, v, w) {
				lastIdx[k] = i
				supported = true
				break
			}
		}

		if !supported {
			dx.Remove(v)
			delete(lastIdx, k)
			deleted = true
		}
	}
	return deleted
}

package csp

// Domain is a finite candidate-value set for one variable. It
// supports the operations the core needs: membership, stable
// iteration, removal, size, and cheap cloning. Order is the insertion
// order of values as they were added (via AddVar or a prior Clone);
// it is not sorted, but it is deterministic and stable across clones,
// which is what the AC-3.1 last-support cache and LCV ordering need —
// a snapshot taken once and reused is reproducible.
//
// An empty Domain means infeasibility: no candidate value remains for
// that variable.
type Domain[V comparable] struct {
	order []V
	pos   map[V]int
}

// NewDomain builds a Domain from a set of initial values, de-duplicating
// and numbering them in the order given.
func NewDomain[V comparable](values ...V) Domain[V] {
	d := Domain[V]{pos: make(map[V]int, len(values))}
	for _, v := range values {
		d.add(v)
	}
	return d
}

func (d *Domain[V]) add(v V) {
	if _, ok := d.pos[v]; ok {
		return
	}
	d.pos[v] = len(d.order)
	d.order = append(d.order, v)
}

// Contains reports whether v is a candidate value.
func (d Domain[V]) Contains(v V) bool {
	_, ok := d.pos[v]
	return ok
}

// Size returns the number of candidate values.
func (d Domain[V]) Size() int {
	return len(d.pos)
}

// IsEmpty reports infeasibility for this variable.
func (d Domain[V]) IsEmpty() bool {
	return len(d.pos) == 0
}

// IsSingleton reports whether exactly one candidate value remains —
// the variable is conceptually assigned.
func (d Domain[V]) IsSingleton() bool {
	return len(d.pos) == 1
}

// SingletonValue returns the sole candidate value. Callers must check
// IsSingleton first; behavior is undefined otherwise.
func (d Domain[V]) SingletonValue() V {
	return d.order[0]
}

// Values returns the candidate values in stable order. The returned
// slice is owned by the caller and safe to mutate.
func (d Domain[V]) Values() []V {
	out := make([]V, len(d.order))
	copy(out, d.order)
	return out
}

// Remove deletes v from the domain, reporting whether it was present.
func (d *Domain[V]) Remove(v V) bool {
	i, ok := d.pos[v]
	if !ok {
		return false
	}
	delete(d.pos, v)
	d.order = append(d.order[:i], d.order[i+1:]...)
	for j := i; j < len(d.order); j++ {
		d.pos[d.order[j]] = j
	}
	return true
}

// Clone returns an independent copy; mutating the clone never affects
// the original. This is the hot-path operation on every recursion
// level of search: each branch clones the full domain set once before
// propagating an assignment (see search.go).
func (d Domain[V]) Clone() Domain[V] {
	out := Domain[V]{
		order: make([]V, len(d.order)),
		pos:   make(map[V]int, len(d.pos)),
	}
	copy(out.order, d.order)
	for k, v := range d.pos {
		out.pos[k] = v
	}
	return out
}

// DomainSet is the per-variable collection of domains indexed by Var.
type DomainSet[V comparable] []Domain[V]

// CloneAll deep-copies every domain in the set — the "clone all
// domains, assign one, propagate" step every search recursion takes.
func (ds DomainSet[V]) CloneAll() DomainSet[V] {
	out := make(DomainSet[V], len(ds))
	for i, d := range ds {
		out[i] = d.Clone()
	}
	return out
}

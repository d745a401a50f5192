package csp

// AllDiffPropagator is Régin's bipartite-matching filter for the
// AllDiff global constraint. For each AllDiff it builds the value
// graph (variables x values), finds a maximum matching with
// Hopcroft–Karp, orients the residual graph along matched/unmatched
// edges, and marks every matched edge, and every edge that lies on an
// even alternating cycle (via Tarjan SCC) or an even alternating path
// from a free vertex (via BFS), as consistent. Every remaining unmarked edge cannot
// belong to any maximum matching and is pruned.
type AllDiffPropagator[V comparable] struct {
	globals []*AllDiff[V]
}

// NewAllDiffPropagator binds a propagator to a problem's registered
// AllDiff globals.
func NewAllDiffPropagator[K comparable, V comparable](p *Problem[K, V]) *AllDiffPropagator[V] {
	return &AllDiffPropagator[V]{globals: p.Globals()}
}

// Propagate runs every AllDiff to a joint local fixpoint: passes
// repeat while any global reduced a domain in the previous pass. It
// does not mutate its input; on infeasibility (a matching covers
// fewer than |scope| variables, or a domain empties) it returns
// (nil, true).
func (r *AllDiffPropagator[V]) Propagate(domains DomainSet[V]) (DomainSet[V], bool) {
	if len(r.globals) == 0 {
		return domains.CloneAll(), false
	}

	working := domains.CloneAll()
	anyReduced := false

	for {
		changedThisPass := false
		for _, g := range r.globals {
			reduced, ok := r.filterOne(g, working)
			if !ok {
				return nil, true
			}
			if reduced {
				changedThisPass = true
				anyReduced = true
			}
		}
		if !changedThisPass {
			break
		}
	}

	return working, anyReduced
}

// valueEdge is one edge (xi, valID) of the value graph, remembering
// the untransformed domain value it was built from so pruning can
// remove the right thing from the variable's domain.
type valueEdge[V comparable] struct {
	xi    int
	valID int
	orig  V
}

// filterOne runs one Régin filtering pass over a single AllDiff,
// mutating working in place. Returns (reduced, ok); ok is false iff
// the value graph has no matching covering every scope variable, or a
// domain emptied after pruning.
func (r *AllDiffPropagator[V]) filterOne(g *AllDiff[V], working DomainSet[V]) (bool, bool) {
	n := len(g.Scope)

	valueID := make(map[V]int)
	var edges []valueEdge[V]
	adjX := make([][]int, n)

	for xi, x := range g.Scope {
		for _, v := range working[x].Values() {
			tv := g.transform(x, v)
			id, ok := valueID[tv]
			if !ok {
				id = len(valueID)
				valueID[tv] = id
			}
			adjX[xi] = append(adjX[xi], id)
			edges = append(edges, valueEdge[V]{xi: xi, valID: id, orig: v})
		}
	}
	m := len(valueID)

	matching := HopcroftKarp(n, m, adjX)
	if len(matching) < n {
		return false, false
	}

	matchedValOf := make([]int, n) // xi -> matched valID, or -1
	for i := range matchedValOf {
		matchedValOf[i] = -1
	}
	valCovered := make([]bool, m)
	for _, e := range matching {
		matchedValOf[e.X] = e.Y
		valCovered[e.Y] = true
	}

	// Oriented residual graph on n+m vertices: xi is node xi,
	// valID is node n+valID. Matched edges point x -> v; every
	// other value-graph edge points v -> x.
	numNodes := n + m
	orientedAdj := make([][]int, numNodes)

	type orientedEdge struct {
		u, w int
	}
	edgeOrient := make([]orientedEdge, len(edges))

	for ei, e := range edges {
		valNode := n + e.valID
		var oe orientedEdge
		if matchedValOf[e.xi] == e.valID {
			oe = orientedEdge{u: e.xi, w: valNode}
		} else {
			oe = orientedEdge{u: valNode, w: e.xi}
		}
		edgeOrient[ei] = oe
		orientedAdj[oe.u] = append(orientedAdj[oe.u], oe.w)
	}

	comp := Tarjan(orientedAdj)

	var free []int
	for xi := 0; xi < n; xi++ {
		if matchedValOf[xi] == -1 {
			free = append(free, xi)
		}
	}
	for vid := 0; vid < m; vid++ {
		if !valCovered[vid] {
			free = append(free, n+vid)
		}
	}
	reachable := bfsReachable(orientedAdj, free)

	toRemove := make(map[Var]map[V]struct{})
	anyRemoved := false
	for ei, e := range edges {
		oe := edgeOrient[ei]
		consistent := matchedValOf[e.xi] == e.valID || comp[oe.u] == comp[oe.w] || reachable[oe.u]
		if consistent {
			continue
		}
		x := g.Scope[e.xi]
		if toRemove[x] == nil {
			toRemove[x] = make(map[V]struct{})
		}
		toRemove[x][e.orig] = struct{}{}
	}

	for x, vals := range toRemove {
		d := &working[x]
		for v := range vals {
			if d.Remove(v) {
				anyRemoved = true
			}
		}
		if d.IsEmpty() {
			return false, false
		}
	}

	return anyRemoved, true
}

// bfsReachable returns, for each node, whether it is reachable from
// any of sources by following adj forward (sources themselves count
// as reachable).
func bfsReachable(adj [][]int, sources []int) []bool {
	reached := make([]bool, len(adj))
	queue := make([]int, 0, len(sources))
	for _, s := range sources {
		if !reached[s] {
			reached[s] = true
			queue = append(queue, s)
		}
	}
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, w := range adj[u] {
			if !reached[w] {
				reached[w] = true
				queue = append(queue, w)
			}
		}
	}
	return reached
}

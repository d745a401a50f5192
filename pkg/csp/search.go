package csp

// SearchStats counts search-tree shape for diagnostics and the
// orchestrator's structured logging; it is not used by the search
// algorithm itself.
type SearchStats struct {
	NodesVisited     int
	Backtracks       int
	PropagationCalls int
	MaxDepthReached  int
}

// Search runs chronological backtracking with forward inference over
// exactly the variables in scope (the rest of ctx.Assignment, if any,
// is treated as fixed context — used when a decomposed sub-problem is
// solved on its own). It returns the first complete, consistent
// assignment over scope found, or ok=false if scope is unsatisfiable.
//
// Per step: pick the next unassigned variable by MRV+degree, try its
// candidate values in LCV order, and for each consistent value, clone
// the domains, narrow the chosen variable's domain down to {val} (the
// Assign(var,val) step), run inference seeded from its neighbours, and
// recurse on the resulting (possibly smaller) domains. On failure the
// domains used for the next value try are the pre-assignment ones for
// this variable — the in-flight narrowed-and-inferred domains are a
// call-local clone, so simply discarding them is the rollback; no
// explicit undo log is needed.
func Search[K comparable, V comparable](
	p *Problem[K, V],
	inf *Inference[K, V],
	scope []bool,
	domains DomainSet[V],
	ctx *AssignCtx[V],
	stats *SearchStats,
) (Assignment[V], bool) {
	return searchAt(p, inf, scope, domains, ctx, stats, 0)
}

func searchAt[K comparable, V comparable](
	p *Problem[K, V],
	inf *Inference[K, V],
	scope []bool,
	domains DomainSet[V],
	ctx *AssignCtx[V],
	stats *SearchStats,
	depth int,
) (Assignment[V], bool) {
	stats.NodesVisited++
	if depth > stats.MaxDepthReached {
		stats.MaxDepthReached = depth
	}

	x := selectInScope(p, domains, ctx.Unassigned, scope)
	if x == -1 {
		return ctx.Assignment.Clone(), true
	}

	for _, val := range OrderValues(p, domains, ctx.Unassigned, x) {
		if !p.Consistent(x, val, ctx.Assignment) {
			continue
		}

		ctx.Assignment[x] = val
		ctx.Unassigned[x] = false

		assigned := domains.CloneAll()
		assigned[x] = NewDomain(val)

		stats.PropagationCalls++
		nextDomains, _ := inf.RunAfterAssign(assigned, p, x)
		if nextDomains != nil && consistentWithAssignment(ctx.Assignment, nextDomains, x) {
			solution, found := searchAt(p, inf, scope, nextDomains, ctx, stats, depth+1)
			if found {
				return solution, true
			}
		}

		delete(ctx.Assignment, x)
		ctx.Unassigned[x] = true
		stats.Backtracks++
	}

	return nil, false
}

// selectInScope is SelectUnassigned restricted to a variable subset;
// it returns -1 when every in-scope variable is already assigned.
func selectInScope[K comparable, V comparable](p *Problem[K, V], domains DomainSet[V], unassigned []bool, scope []bool) Var {
	masked := make([]bool, len(unassigned))
	any := false
	for x, u := range unassigned {
		if u && scope[x] {
			masked[x] = true
			any = true
		}
	}
	if !any {
		return -1
	}
	return SelectUnassigned(p, domains, masked)
}

// consistentWithAssignment re-checks that the just-assigned variable x
// still has its value present in its post-inference domain;
// inference only prunes unassigned domains, but a defensive check here
// catches a propagator bug cheaply rather than returning a broken
// solution.
func consistentWithAssignment[V comparable](a Assignment[V], domains DomainSet[V], x Var) bool {
	return domains[x].Contains(a[x])
}

// ScopeMask builds a membership mask over the full variable space for
// a component returned by Decompose.
func ScopeMask(numVars int, component []Var) []bool {
	mask := make([]bool, numVars)
	for _, v := range component {
		mask[v] = true
	}
	return mask
}

// FullScope is the trivial mask that includes every variable, for
// solving without decomposition.
func FullScope(numVars int) []bool {
	mask := make([]bool, numVars)
	for i := range mask {
		mask[i] = true
	}
	return mask
}

package csp

// SelectUnassigned picks the next variable to branch on, using
// Minimum-Remaining-Values with a degree tie-break: smallest current
// domain first, ties broken by most constrained neighbours (binary or
// shared-AllDiff) that are still unassigned, ties after that broken by
// the lowest Var id for determinism. The active degree is recounted
// against the current unassigned vector every call, not cached,
// because it shrinks as search assigns more neighbours.
func SelectUnassigned[K comparable, V comparable](p *Problem[K, V], domains DomainSet[V], unassigned []bool) Var {
	best := Var(-1)
	bestSize := -1
	bestDegree := -1

	for x, isUnassigned := range unassigned {
		if !isUnassigned {
			continue
		}
		xv := Var(x)
		size := domains[x].Size()
		degree := activeDegree(p, unassigned, xv)

		switch {
		case best == -1:
			best, bestSize, bestDegree = xv, size, degree
		case size < bestSize:
			best, bestSize, bestDegree = xv, size, degree
		case size == bestSize && degree > bestDegree:
			best, bestSize, bestDegree = xv, size, degree
		}
	}

	return best
}

// activeDegree counts x's neighbours (binary or shared-AllDiff) that
// are still unassigned, per the current unassigned vector.
func activeDegree[K comparable, V comparable](p *Problem[K, V], unassigned []bool, x Var) int {
	degree := 0
	for _, y := range p.Neighbors(x) {
		if unassigned[y] {
			degree++
		}
	}
	return degree
}

// OrderValues ranks x's candidate values by Least-Constraining-Value:
// for each candidate, count how many values would be eliminated from
// unassigned neighbours' domains if x took it, and try the least
// disruptive choices first. Ties keep the domain's existing (stable
// insertion) order.
func OrderValues[K comparable, V comparable](p *Problem[K, V], domains DomainSet[V], unassigned []bool, x Var) []V {
	candidates := domains[x].Values()
	if len(candidates) <= 1 {
		return candidates
	}

	cost := make(map[V]int, len(candidates))
	neighbors := p.Neighbors(x)

	for _, v := range candidates {
		eliminated := 0
		for _, y := range neighbors {
			if !unassigned[y] {
				continue
			}
			c, ok := p.Consts()[x][y]
			if !ok {
				continue
			}
			for _, w := range domains[y].Values() {
				if !c.Satisfies(Arc{X: x, Y: y}, v, w) {
					eliminated++
				}
			}
		}
		cost[v] = eliminated
	}

	ordered := append([]V(nil), candidates...)
	// Stable insertion sort: candidates are typically few, and a
	// stable sort preserves the domain's existing order among ties.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && cost[ordered[j]] < cost[ordered[j-1]]; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}

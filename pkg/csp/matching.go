package csp

import "math"

// MatchEdge is one edge of a bipartite matching: index i into xs
// matched with index j into ys.
type MatchEdge struct {
	X, Y int
}

const nilVertex = 0

// HopcroftKarp finds a maximum matching in the bipartite graph
// G = (xs, ys, adj), where adj[i] lists the indices into ys that xs[i]
// connects to. It runs in O(E*sqrt(V)) via alternating-path BFS
// layering followed by DFS augmentation, repeated to a fixpoint.
//
// It fails soft: if the returned matching covers fewer than numX
// vertices, the caller infers infeasibility (no perfect matching)
// rather than getting an error.
func HopcroftKarp(numX, numY int, adj [][]int) []MatchEdge {
	// 1-indexed internally; 0 is the NIL sentinel vertex.
	pairX := make([]int, numX+1)
	pairY := make([]int, numY+1)
	dist := make([]int, numX+1)

	bfs := func() bool {
		queue := make([]int, 0, numX)
		for u := 1; u <= numX; u++ {
			if pairX[u] == nilVertex {
				dist[u] = 0
				queue = append(queue, u)
			} else {
				dist[u] = math.MaxInt32
			}
		}
		distNil := math.MaxInt32

		for head := 0; head < len(queue); head++ {
			u := queue[head]
			if dist[u] < distNil {
				for _, v0 := range adj[u-1] {
					v := v0 + 1
					pu := pairY[v]
					if pu == nilVertex {
						if distNil == math.MaxInt32 {
							distNil = dist[u] + 1
						}
					} else if dist[pu] == math.MaxInt32 {
						dist[pu] = dist[u] + 1
						queue = append(queue, pu)
					}
				}
			}
		}
		return distNil != math.MaxInt32
	}

	var dfs func(u int) bool
	dfs = func(u int) bool {
		for _, v0 := range adj[u-1] {
			v := v0 + 1
			pu := pairY[v]
			if pu == nilVertex || (dist[pu] == dist[u]+1 && dfs(pu)) {
				pairY[v] = u
				pairX[u] = v
				return true
			}
		}
		dist[u] = math.MaxInt32
		return false
	}

	for bfs() {
		for u := 1; u <= numX; u++ {
			if pairX[u] == nilVertex {
				dfs(u)
			}
		}
	}

	out := make([]MatchEdge, 0, numX)
	for u := 1; u <= numX; u++ {
		if pairX[u] != nilVertex {
			out = append(out, MatchEdge{X: u - 1, Y: pairX[u] - 1})
		}
	}
	return out
}

// FordFulkersonMatching finds a maximum bipartite matching with a
// simple augmenting-path DFS — the Ford–Fulkerson specialization to
// bipartite graphs. Worst case O(V*E), slower than HopcroftKarp's
// O(E*sqrt(V)) but simpler; kept as a cross-check and for small
// instances (see the cross-check test in matching_test.go).
func FordFulkersonMatching(numX, numY int, adj [][]int) []MatchEdge {
	matchY := make([]int, numY)
	for i := range matchY {
		matchY[i] = -1
	}

	var tryAugment func(x int, seen []bool) bool
	tryAugment = func(x int, seen []bool) bool {
		for _, y := range adj[x] {
			if seen[y] {
				continue
			}
			seen[y] = true
			if matchY[y] == -1 || tryAugment(matchY[y], seen) {
				matchY[y] = x
				return true
			}
		}
		return false
	}

	for x := 0; x < numX; x++ {
		tryAugment(x, make([]bool, numY))
	}

	out := make([]MatchEdge, 0, numX)
	for y, x := range matchY {
		if x != -1 {
			out = append(out, MatchEdge{X: x, Y: y})
		}
	}
	return out
}

package csp

import (
	"fmt"
	"os"
	"strconv"
)

// ProblemOption configures a Problem at construction time.
type ProblemOption func(*problemConfig)

type problemConfig struct {
	binaryOnly bool
}

// WithBinaryOnly forces every AllDiff to be pre-expanded into pairwise
// Different constraints at build time, bypassing Régin filtering. It
// is a debugging/benchmarking knob, not a general solving strategy.
func WithBinaryOnly(v bool) ProblemOption {
	return func(c *problemConfig) { c.binaryOnly = v }
}

// binaryOnlyFromEnv mirrors the original model's
// `os.environ.get("BINARY_ONLY", binary_only)` default.
func binaryOnlyFromEnv() bool {
	v, ok := os.LookupEnv("BINARY_ONLY")
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Problem interns user-supplied variable keys (type K) into dense Var
// indices and stores their domains, binary-constraint adjacency, and
// global constraints. It is built once via AddVar/AddBinary/AddUnary/
// AddAllDiff and then queried read-only by the solver.
type Problem[K comparable, V comparable] struct {
	varIDs       map[K]Var
	vars         []K
	domains      DomainSet[V]
	consts       []map[Var]*ConstSet[V]
	globals      []*AllDiff[V]
	scopedGlobal [][]*AllDiff[V]
	binaryOnly   bool

	neighbors [][]Var // lazily built, memoized adjacency for MRV degree
}

// NewProblem creates an empty Problem. BINARY_ONLY, if set truthy in
// the environment, forces AllDiff pre-expansion unless overridden by
// WithBinaryOnly.
func NewProblem[K comparable, V comparable](opts ...ProblemOption) *Problem[K, V] {
	cfg := problemConfig{binaryOnly: binaryOnlyFromEnv()}
	for _, o := range opts {
		o(&cfg)
	}
	return &Problem[K, V]{
		varIDs:     make(map[K]Var),
		binaryOnly: cfg.binaryOnly,
	}
}

// AddVar registers key with the given candidate values, or replaces
// its domain if key is already registered.
func (p *Problem[K, V]) AddVar(key K, values ...V) Var {
	if v, ok := p.varIDs[key]; ok {
		p.domains[v] = NewDomain(values...)
		return v
	}
	v := Var(len(p.vars))
	p.varIDs[key] = v
	p.vars = append(p.vars, key)
	p.domains = append(p.domains, NewDomain(values...))
	p.consts = append(p.consts, make(map[Var]*ConstSet[V]))
	p.scopedGlobal = append(p.scopedGlobal, nil)
	p.neighbors = nil
	return v
}

// Resolve maps a variable key to its dense index, failing with
// ErrUnknownVariable if key was never registered via AddVar.
func (p *Problem[K, V]) Resolve(key K) (Var, error) {
	v, ok := p.varIDs[key]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownVariable, key)
	}
	return v, nil
}

func (p *Problem[K, V]) inRange(x Var) bool {
	return int(x) >= 0 && int(x) < len(p.vars)
}

// AddBinary registers a binary constraint, asserting both endpoints
// were already added via AddVar. Multiple constraints on the same
// pair are folded into one conjunction (ConstSet); consts[x][y] and
// consts[y][x] are kept pointing at the same shared relation.
func (p *Problem[K, V]) AddBinary(c BinaryConstraint[V]) error {
	x, y := c.Vars()
	if !p.inRange(x) || !p.inRange(y) {
		return fmt.Errorf("%w: %d", ErrUnknownVariable, maxVar(x, y))
	}
	if x == y {
		return fmt.Errorf("%w: %d", ErrDuplicateArc, x)
	}
	acc, ok := p.consts[x][y]
	if !ok {
		acc = NewConstSet[V](x, y)
		p.consts[x][y] = acc
		p.consts[y][x] = acc
	}
	acc.Add(c)
	p.neighbors = nil
	return nil
}

// AddUnary filters x's domain in place by pred; unary constraints
// never participate in propagation, they are resolved once here.
func (p *Problem[K, V]) AddUnary(u UnaryConstraint[V]) error {
	if !p.inRange(u.X) {
		return fmt.Errorf("%w: %d", ErrUnknownVariable, u.X)
	}
	kept := NewDomain[V]()
	for _, v := range p.domains[u.X].Values() {
		if u.Pred(v) {
			kept.add(v)
		}
	}
	p.domains[u.X] = kept
	return nil
}

// AddAllDiff registers a global AllDiff, or, when the problem was
// built with BINARY_ONLY, expands it immediately into pairwise
// Different constraints.
func (p *Problem[K, V]) AddAllDiff(a *AllDiff[V]) error {
	if len(a.Scope) < 2 {
		return ErrEmptyScope
	}
	for _, x := range a.Scope {
		if !p.inRange(x) {
			return fmt.Errorf("%w: %d", ErrUnknownVariable, x)
		}
	}
	if p.binaryOnly {
		for _, c := range a.IterBinary() {
			if err := p.AddBinary(c); err != nil {
				return err
			}
		}
		return nil
	}
	p.globals = append(p.globals, a)
	for _, x := range a.Scope {
		p.scopedGlobal[x] = append(p.scopedGlobal[x], a)
	}
	p.neighbors = nil
	return nil
}

// NumVars returns the number of interned variables.
func (p *Problem[K, V]) NumVars() int { return len(p.vars) }

// NumVals returns the number of distinct values across all domains.
func (p *Problem[K, V]) NumVals() int {
	seen := make(map[V]struct{})
	for _, d := range p.domains {
		for _, v := range d.Values() {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// Variables returns the original keys in interning order.
func (p *Problem[K, V]) Variables() []K { return p.vars }

// Domains returns the current (build-time) domain set. Search always
// operates on its own cloned/propagated copy, never this one.
func (p *Problem[K, V]) Domains() DomainSet[V] { return p.domains }

// Consts returns, for every variable, its neighbour -> composed
// relation map.
func (p *Problem[K, V]) Consts() []map[Var]*ConstSet[V] { return p.consts }

// Globals returns every registered AllDiff.
func (p *Problem[K, V]) Globals() []*AllDiff[V] { return p.globals }

// ScopedGlobals returns the AllDiffs whose scope contains x.
func (p *Problem[K, V]) ScopedGlobals(x Var) []*AllDiff[V] { return p.scopedGlobal[x] }

// Arc builds the ordered pair (x, y).
func (p *Problem[K, V]) Arc(x, y Var) Arc { return Arc{X: x, Y: y} }

// Key returns the original user-supplied key for a Var.
func (p *Problem[K, V]) Key(x Var) K { return p.vars[x] }

// Neighbors returns every variable directly constrained with x, via a
// binary constraint or a shared AllDiff scope. The result is
// memoized; it is invalidated whenever a new constraint is added.
func (p *Problem[K, V]) Neighbors(x Var) []Var {
	if p.neighbors == nil {
		p.buildNeighbors()
	}
	return p.neighbors[x]
}

func (p *Problem[K, V]) buildNeighbors() {
	p.neighbors = make([][]Var, len(p.vars))
	for x := range p.vars {
		seen := make(map[Var]struct{})
		for y := range p.consts[x] {
			seen[y] = struct{}{}
		}
		for _, g := range p.scopedGlobal[x] {
			for _, y := range g.Scope {
				if y != Var(x) {
					seen[y] = struct{}{}
				}
			}
		}
		ns := make([]Var, 0, len(seen))
		for y := range seen {
			ns = append(ns, y)
		}
		p.neighbors[x] = ns
	}
}

// Init produces the initial search context: every singleton-domain
// variable is pre-assigned, and Unassigned marks exactly the rest.
func (p *Problem[K, V]) Init() *AssignCtx[V] {
	assignment := make(Assignment[V])
	unassigned := make([]bool, len(p.vars))
	for x, d := range p.domains {
		if d.IsSingleton() {
			assignment[Var(x)] = d.SingletonValue()
		} else {
			unassigned[x] = true
		}
	}
	return &AssignCtx[V]{Assignment: assignment, Unassigned: unassigned}
}

// Complete reports whether every variable has a value in a.
func (p *Problem[K, V]) Complete(a Assignment[V]) bool {
	return len(a) == p.NumVars()
}

// Consistent reports whether x := val is consistent with the partial
// assignment a: every global whose scope contains x must still be
// satisfied by the extended assignment, and every already-assigned
// binary neighbour must satisfy its composed relation with x.
// Re-assigning an already-assigned x is considered consistent.
func (p *Problem[K, V]) Consistent(x Var, val V, a Assignment[V]) bool {
	if len(p.scopedGlobal[x]) > 0 {
		ext := a.Clone()
		ext[x] = val
		for _, g := range p.scopedGlobal[x] {
			if !g.Satisfies(ext) {
				return false
			}
		}
	}
	for y, c := range p.consts[x] {
		if yVal, ok := a[y]; ok {
			if !c.Satisfies(Arc{X: x, Y: y}, val, yVal) {
				return false
			}
		}
	}
	return true
}

// AsSolution maps an internal assignment back to user-supplied keys.
func (p *Problem[K, V]) AsSolution(a Assignment[V]) map[K]V {
	out := make(map[K]V, len(a))
	for x, v := range a {
		out[p.vars[x]] = v
	}
	return out
}

// RecursionBudget estimates the search-tree depth bound
// 2*(num_vars+num_vals). It is informational only: Solve does not
// consult it.
func (p *Problem[K, V]) RecursionBudget() int {
	return 2 * (p.NumVars() + p.NumVals())
}

func maxVar(a, b Var) Var {
	if a > b {
		return a
	}
	return b
}

package csp

import (
	"cmp"
	"fmt"
)

// Transform is a per-argument value transform applied before a
// constraint's predicate is evaluated — e.g. "x+i" or "x-i" in an
// AllDiff scoped over a diagonal. The core treats it opaquely; only
// the constraint that holds it ever calls it.
type Transform[V comparable] func(V) V

// Num is the arithmetic capability Linear constraints require:
// addition and multiplication via the usual operators.
type Num interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// BinaryConstraint is the capability set every binary relation must
// provide: which two variables it relates, whether a candidate pair
// of values satisfies it, and a display form. Evaluating Satisfies
// respects argument order — callers supply the arc they are revising
// along, and the constraint swaps arguments internally when that arc
// is the reverse of the one it was built for. This lets asymmetric
// predicates (x < y) be queried correctly from either direction.
type BinaryConstraint[V comparable] interface {
	Vars() (Var, Var)
	Satisfies(arc Arc, xVal, yVal V) bool
	String() string
}

// BinBase is the common (X, Y) pair every concrete binary constraint
// embeds; Vars() is identical across all of them.
type BinBase struct {
	X, Y Var
}

// Vars returns the (x, y) pair this constraint was built for.
func (b BinBase) Vars() (Var, Var) { return b.X, b.Y }

// orient returns (xVal, yVal) reordered into the constraint's own
// canonical (X, Y) order given the arc the caller is evaluating along.
func orient[V any](arc Arc, selfX, selfY Var, xVal, yVal V) (V, V) {
	if arc.X == selfX && arc.Y == selfY {
		return xVal, yVal
	}
	return yVal, xVal
}

// PredicateConstraint wraps a 2-argument boolean predicate with an
// operator tag used only for String(). Same, Different, LessEq,
// LessThan, GreaterEq and GreaterThan are its concrete variants.
type PredicateConstraint[V comparable] struct {
	BinBase
	XForm, YForm Transform[V]
	Pred         func(a, b V) bool
	Op           string
}

// Satisfies evaluates the predicate, applying any attached transforms
// after reordering the given values into canonical (X, Y) order.
func (p *PredicateConstraint[V]) Satisfies(arc Arc, xVal, yVal V) bool {
	a, b := orient(arc, p.X, p.Y, xVal, yVal)
	if p.XForm != nil {
		a = p.XForm(a)
	}
	if p.YForm != nil {
		b = p.YForm(b)
	}
	return p.Pred(a, b)
}

func (p *PredicateConstraint[V]) String() string {
	return fmt.Sprintf("x[%d] %s x[%d]", p.X, p.Op, p.Y)
}

// NewSame returns the binary constraint x == y.
func NewSame[V comparable](x, y Var) *PredicateConstraint[V] {
	return &PredicateConstraint[V]{BinBase: BinBase{X: x, Y: y}, Pred: func(a, b V) bool { return a == b }, Op: "="}
}

// NewDifferent returns the binary constraint x != y.
func NewDifferent[V comparable](x, y Var) *PredicateConstraint[V] {
	return &PredicateConstraint[V]{BinBase: BinBase{X: x, Y: y}, Pred: func(a, b V) bool { return a != b }, Op: "!="}
}

// NewLessEq returns the binary constraint x <= y.
func NewLessEq[V cmp.Ordered](x, y Var) *PredicateConstraint[V] {
	return &PredicateConstraint[V]{BinBase: BinBase{X: x, Y: y}, Pred: func(a, b V) bool { return a <= b }, Op: "<="}
}

// NewLessThan returns the binary constraint x < y.
func NewLessThan[V cmp.Ordered](x, y Var) *PredicateConstraint[V] {
	return &PredicateConstraint[V]{BinBase: BinBase{X: x, Y: y}, Pred: func(a, b V) bool { return a < b }, Op: "<"}
}

// NewGreaterEq returns the binary constraint x >= y.
func NewGreaterEq[V cmp.Ordered](x, y Var) *PredicateConstraint[V] {
	return &PredicateConstraint[V]{BinBase: BinBase{X: x, Y: y}, Pred: func(a, b V) bool { return a >= b }, Op: ">="}
}

// NewGreaterThan returns the binary constraint x > y.
func NewGreaterThan[V cmp.Ordered](x, y Var) *PredicateConstraint[V] {
	return &PredicateConstraint[V]{BinBase: BinBase{X: x, Y: y}, Pred: func(a, b V) bool { return a > b }, Op: ">"}
}

// NewPredicate builds a binary constraint from an arbitrary boolean
// predicate, for cases the named variants don't cover. op is used only
// for display.
func NewPredicate[V comparable](x, y Var, pred func(a, b V) bool, op string) *PredicateConstraint[V] {
	return &PredicateConstraint[V]{BinBase: BinBase{X: x, Y: y}, Pred: pred, Op: op}
}

// LinearOp names the comparator of a LinearConstraint.
type LinearOp int

const (
	LinearEq LinearOp = iota
	LinearNeq
	LinearLt
	LinearLeq
	LinearGt
	LinearGeq
)

func (op LinearOp) String() string {
	switch op {
	case LinearEq:
		return "="
	case LinearNeq:
		return "!="
	case LinearLt:
		return "<"
	case LinearLeq:
		return "<="
	case LinearGt:
		return ">"
	case LinearGeq:
		return ">="
	default:
		return "?"
	}
}

// LinearConstraint represents `a*x + b*y {op} c`, each of x and y
// optionally passed through a Transform first.
type LinearConstraint[V Num] struct {
	BinBase
	A, B, C      V
	XForm, YForm Transform[V]
	Op           LinearOp
}

// NewLinear builds a*x + b*y {op} c over the arc (x, y).
func NewLinear[V Num](x, y Var, a, b, c V, op LinearOp) *LinearConstraint[V] {
	return &LinearConstraint[V]{BinBase: BinBase{X: x, Y: y}, A: a, B: b, C: c, Op: op}
}

// Satisfies evaluates a*x + b*y {op} c after reordering into (X, Y)
// order and applying any attached transforms.
func (l *LinearConstraint[V]) Satisfies(arc Arc, xVal, yVal V) bool {
	a, b := orient(arc, l.X, l.Y, xVal, yVal)
	if l.XForm != nil {
		a = l.XForm(a)
	}
	if l.YForm != nil {
		b = l.YForm(b)
	}
	lhs := l.A*a + l.B*b
	switch l.Op {
	case LinearEq:
		return lhs == l.C
	case LinearNeq:
		return lhs != l.C
	case LinearLt:
		return lhs < l.C
	case LinearLeq:
		return lhs <= l.C
	case LinearGt:
		return lhs > l.C
	case LinearGeq:
		return lhs >= l.C
	default:
		return false
	}
}

func (l *LinearConstraint[V]) String() string {
	return fmt.Sprintf("%v*x[%d] + %v*x[%d] %s %v", l.A, l.X, l.B, l.Y, l.Op, l.C)
}

// ConstSet is the conjunction of every binary constraint registered
// between the same ordered pair (x, y); Problem folds repeated
// AddBinary calls on one pair into a single ConstSet so that
// consts[x][y] and consts[y][x] always point at one shared relation.
type ConstSet[V comparable] struct {
	BinBase
	Cs []BinaryConstraint[V]
}

// NewConstSet returns an empty conjunction over (x, y).
func NewConstSet[V comparable](x, y Var) *ConstSet[V] {
	return &ConstSet[V]{BinBase: BinBase{X: x, Y: y}}
}

// Add folds c into the conjunction; nested ConstSets are flattened
// rather than nested.
func (cs *ConstSet[V]) Add(c BinaryConstraint[V]) {
	if other, ok := c.(*ConstSet[V]); ok {
		cs.Cs = append(cs.Cs, other.Cs...)
		return
	}
	cs.Cs = append(cs.Cs, c)
}

// Satisfies reports whether every member of the conjunction holds.
func (cs *ConstSet[V]) Satisfies(arc Arc, xVal, yVal V) bool {
	for _, c := range cs.Cs {
		if !c.Satisfies(arc, xVal, yVal) {
			return false
		}
	}
	return true
}

func (cs *ConstSet[V]) String() string {
	s := ""
	for i, c := range cs.Cs {
		if i > 0 {
			s += " & "
		}
		s += c.String()
	}
	return s
}

// UnaryConstraint is resolved once, at build time, by filtering the
// variable's domain — it never participates in propagation.
type UnaryConstraint[V comparable] struct {
	X    Var
	Pred func(V) bool
}

// AllDiff is the global all-different constraint: every pair of
// variables in Scope must take distinct values, after each variable's
// optional per-argument Transform is applied.
type AllDiff[V comparable] struct {
	Scope      []Var
	Transforms map[Var]Transform[V]
}

// NewAllDiff builds an AllDiff over the given scope.
func NewAllDiff[V comparable](scope ...Var) *AllDiff[V] {
	return &AllDiff[V]{Scope: append([]Var(nil), scope...), Transforms: make(map[Var]Transform[V])}
}

// WithTransform attaches a per-argument transform to variable x,
// applied to its values before distinctness is checked. Returns the
// receiver for chaining.
func (a *AllDiff[V]) WithTransform(x Var, f Transform[V]) *AllDiff[V] {
	a.Transforms[x] = f
	return a
}

func (a *AllDiff[V]) transform(x Var, v V) V {
	if f, ok := a.Transforms[x]; ok {
		return f(v)
	}
	return v
}

// Satisfies reports whether a (possibly partial) assignment keeps
// every in-scope, currently-assigned pair distinct after transforms.
func (a *AllDiff[V]) Satisfies(assignment Assignment[V]) bool {
	seen := make(map[V]struct{}, len(a.Scope))
	for _, x := range a.Scope {
		v, ok := assignment[x]
		if !ok {
			continue
		}
		tv := a.transform(x, v)
		if _, dup := seen[tv]; dup {
			return false
		}
		seen[tv] = struct{}{}
	}
	return true
}

// IterBinary expands the AllDiff into its pairwise Different encoding,
// transform-aware — used as a fallback when BINARY_ONLY forces globals
// to be pre-expanded at build time.
func (a *AllDiff[V]) IterBinary() []BinaryConstraint[V] {
	out := make([]BinaryConstraint[V], 0, len(a.Scope)*(len(a.Scope)-1)/2)
	for i := 0; i < len(a.Scope); i++ {
		for j := i + 1; j < len(a.Scope); j++ {
			x, y := a.Scope[i], a.Scope[j]
			xf, yf := a.Transforms[x], a.Transforms[y]
			out = append(out, &PredicateConstraint[V]{
				BinBase: BinBase{X: x, Y: y},
				Pred: func(xv, yv V) bool {
					if xf != nil {
						xv = xf(xv)
					}
					if yf != nil {
						yv = yf(yv)
					}
					return xv != yv
				},
				Op: "!=",
			})
		}
	}
	return out
}

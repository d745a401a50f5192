// Package puzzles builds a handful of classic CSP encodings used by
// the cmd/csp-solve CLI and the solver tests.
package puzzles

import "github.com/gitrdm/reginsolve/pkg/csp"

// NQueens builds the N-queens problem: one variable per row holding
// the queen's column, AllDiff over columns, and pairwise predicates
// ruling out shared diagonals.
func NQueens(n int) *csp.Problem[int, int] {
	p := csp.NewProblem[int, int]()

	values := make([]int, n)
	for i := range values {
		values[i] = i
	}

	vars := make([]csp.Var, n)
	for row := 0; row < n; row++ {
		vars[row] = p.AddVar(row, values...)
	}

	if err := p.AddAllDiff(csp.NewAllDiff[int](vars...)); err != nil {
		panic(err)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			offset := j - i
			c := csp.NewPredicate[int](vars[i], vars[j], func(ci, cj int) bool {
				diff := ci - cj
				if diff < 0 {
					diff = -diff
				}
				return diff != offset
			}, "not-on-diagonal")
			if err := p.AddBinary(c); err != nil {
				panic(err)
			}
		}
	}

	return p
}

// SudokuSize is the board dimension every Sudoku helper assumes.
const SudokuSize = 9

// Sudoku builds a 9x9 Sudoku problem from an 81-cell clue grid (0 for
// an empty cell): one variable per cell, AllDiff over every row,
// column and 3x3 block, and a unary constraint pinning each clue.
func Sudoku(clues [81]int) *csp.Problem[int, int] {
	p := csp.NewProblem[int, int]()

	digits := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	vars := make([]csp.Var, 81)
	for i := 0; i < 81; i++ {
		vars[i] = p.AddVar(i, digits...)
	}

	for i, clue := range clues {
		if clue == 0 {
			continue
		}
		err := p.AddUnary(csp.UnaryConstraint[int]{X: vars[i], Pred: func(v int) bool { return v == clue }})
		if err != nil {
			panic(err)
		}
	}

	for r := 0; r < 9; r++ {
		row := make([]csp.Var, 9)
		for c := 0; c < 9; c++ {
			row[c] = vars[r*9+c]
		}
		sudokuAllDiff(p, row)
	}
	for c := 0; c < 9; c++ {
		col := make([]csp.Var, 9)
		for r := 0; r < 9; r++ {
			col[r] = vars[r*9+c]
		}
		sudokuAllDiff(p, col)
	}
	for br := 0; br < 3; br++ {
		for bc := 0; bc < 3; bc++ {
			block := make([]csp.Var, 0, 9)
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					block = append(block, vars[(br*3+r)*9+(bc*3+c)])
				}
			}
			sudokuAllDiff(p, block)
		}
	}

	return p
}

func sudokuAllDiff(p *csp.Problem[int, int], scope []csp.Var) {
	if err := p.AddAllDiff(csp.NewAllDiff[int](scope...)); err != nil {
		panic(err)
	}
}

// Region names for the Australia map-coloring instance.
const (
	WA = iota
	NT
	SA
	Q
	NSW
	V
	T
)

// RegionNames maps a MapColoring region id to its display name.
var RegionNames = map[int]string{
	WA: "WA", NT: "NT", SA: "SA", Q: "Q", NSW: "NSW", V: "V", T: "T",
}

// Regions lists every region id in a stable display order.
var Regions = []int{WA, NT, SA, Q, NSW, V, T}

var mapAdjacency = [][2]int{
	{WA, NT}, {WA, SA}, {NT, SA}, {NT, Q}, {SA, Q}, {SA, NSW}, {SA, V}, {Q, NSW}, {NSW, V},
}

// MapColoring builds the classic Australia map-coloring problem: one
// variable per region, domain {red, green, blue}, and a Different
// constraint between every pair of adjacent regions.
func MapColoring() *csp.Problem[int, string] {
	p := csp.NewProblem[int, string]()

	colors := []string{"red", "green", "blue"}
	for _, r := range Regions {
		p.AddVar(r, colors...)
	}

	for _, edge := range mapAdjacency {
		x, _ := p.Resolve(edge[0])
		y, _ := p.Resolve(edge[1])
		if err := p.AddBinary(csp.NewDifferent[string](x, y)); err != nil {
			panic(err)
		}
	}

	return p
}

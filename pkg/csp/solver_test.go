package csp_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gitrdm/reginsolve/internal/puzzles"
	"github.com/gitrdm/reginsolve/pkg/csp"
)

type SolverSuite struct {
	suite.Suite
}

func (s *SolverSuite) TestEightQueensIsSatisfiableAndValid() {
	p := puzzles.NQueens(8)
	result := csp.Solve(p)
	require.True(s.T(), result.Satisfiable)
	require.Len(s.T(), result.Solution, 8)

	cols := make(map[int]bool)
	for row, col := range result.Solution {
		require.False(s.T(), cols[col], "two queens share a column")
		cols[col] = true
		for otherRow, otherCol := range result.Solution {
			if otherRow == row {
				continue
			}
			diff := otherCol - col
			if diff < 0 {
				diff = -diff
			}
			require.NotZero(s.T(), diff, "queens at rows %d and %d share a diagonal or column", row, otherRow)
			rowDiff := otherRow - row
			if rowDiff < 0 {
				rowDiff = -rowDiff
			}
			require.NotEqual(s.T(), rowDiff, diff, "queens at rows %d and %d share a diagonal", row, otherRow)
		}
	}
}

func (s *SolverSuite) TestEightQueensParallelAgreesOnSatisfiability() {
	p := puzzles.NQueens(8)
	result := csp.Solve(p, csp.WithParallelSolve(true))
	require.True(s.T(), result.Satisfiable)
	require.Len(s.T(), result.Solution, 8)
}

func (s *SolverSuite) TestSmallQueensIsUnsatisfiable() {
	// N=3 is a classic unsatisfiable instance of n-queens.
	p := puzzles.NQueens(3)
	result := csp.Solve(p)
	require.False(s.T(), result.Satisfiable)
}

func (s *SolverSuite) TestSudokuSolvesAKnownPuzzle() {
	var clues [81]int
	// A single row of clues is enough to exercise the full pipeline
	// without hand-authoring a whole valid Sudoku grid: row 0 pinned to
	// 1..9 forces every column's remaining 8 cells away from its row value.
	for c := 0; c < 9; c++ {
		clues[c] = c + 1
	}

	p := puzzles.Sudoku(clues)
	result := csp.Solve(p)
	require.True(s.T(), result.Satisfiable)
	require.Len(s.T(), result.Solution, 81)
	for c := 0; c < 9; c++ {
		require.Equal(s.T(), c+1, result.Solution[c])
	}
}

func (s *SolverSuite) TestAustraliaMapColoringIsSatisfiable() {
	p := puzzles.MapColoring()
	result := csp.Solve(p)
	require.True(s.T(), result.Satisfiable)
	require.Len(s.T(), result.Solution, len(puzzles.Regions))

	for _, edge := range [][2]int{{puzzles.WA, puzzles.NT}, {puzzles.SA, puzzles.Q}, {puzzles.NSW, puzzles.V}} {
		require.NotEqual(s.T(), result.Solution[edge[0]], result.Solution[edge[1]])
	}
}

func (s *SolverSuite) TestResultIncludesSearchStats() {
	p := puzzles.NQueens(4)
	result := csp.Solve(p)
	require.True(s.T(), result.Satisfiable)
	require.GreaterOrEqual(s.T(), result.Stats.NodesVisited, 1)
}

func TestSolverSuite(t *testing.T) {
	suite.Run(t, new(SolverSuite))
}

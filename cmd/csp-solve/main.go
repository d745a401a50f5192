// Command csp-solve is a small CLI front end over pkg/csp, driving a
// handful of built-in puzzle encodings from internal/puzzles.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/reginsolve/internal/puzzles"
	"github.com/gitrdm/reginsolve/pkg/csp"
)

var (
	verbose  bool
	parallel bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "csp-solve",
		Short: "Solve finite-domain constraint satisfaction puzzles",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solver progress")
	root.PersistentFlags().BoolVar(&parallel, "parallel", false, "solve decomposed components in parallel")

	root.AddCommand(newNQueensCmd(), newSudokuCmd(), newMapColoringCmd())
	return root
}

func logger() *logrus.Logger {
	l := logrus.New()
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}

func newNQueensCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "nqueens",
		Short: "Place N non-attacking queens on an N x N board",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := puzzles.NQueens(n)
			result := csp.Solve(p, csp.WithParallelSolve(parallel), csp.WithLogger(logger()))
			if !result.Satisfiable {
				return fmt.Errorf("no solution for %d-queens", n)
			}
			board := make([]int, n)
			for row, col := range result.Solution {
				board[row] = col
			}
			for row := 0; row < n; row++ {
				for col := 0; col < n; col++ {
					if board[row] == col {
						fmt.Print("Q ")
					} else {
						fmt.Print(". ")
					}
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "size", "n", 8, "board size")
	return cmd
}

func newSudokuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sudoku",
		Short: "Solve the bundled 9x9 Sudoku puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := puzzles.Sudoku(defaultSudoku)
			result := csp.Solve(p, csp.WithParallelSolve(parallel), csp.WithLogger(logger()))
			if !result.Satisfiable {
				return fmt.Errorf("puzzle has no solution")
			}
			for r := 0; r < 9; r++ {
				for c := 0; c < 9; c++ {
					fmt.Printf("%d ", result.Solution[r*9+c])
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newMapColoringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mapcoloring",
		Short: "Color the mainland Australian states/territories with 3 colors",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := puzzles.MapColoring()
			result := csp.Solve(p, csp.WithParallelSolve(parallel), csp.WithLogger(logger()))
			if !result.Satisfiable {
				return fmt.Errorf("no valid coloring")
			}
			for _, r := range puzzles.Regions {
				fmt.Printf("%-4s %s\n", puzzles.RegionNames[r], result.Solution[r])
			}
			return nil
		},
	}
}

var defaultSudoku = [81]int{
	5, 3, 0, 0, 7, 0, 0, 0, 0,
	6, 0, 0, 1, 9, 5, 0, 0, 0,
	0, 9, 8, 0, 0, 0, 0, 6, 0,

	8, 0, 0, 0, 6, 0, 0, 0, 3,
	4, 0, 0, 8, 0, 3, 0, 0, 1,
	7, 0, 0, 0, 2, 0, 0, 0, 6,

	0, 6, 0, 0, 0, 0, 2, 8, 0,
	0, 0, 0, 4, 1, 9, 0, 0, 5,
	0, 0, 0, 0, 8, 0, 0, 7, 9,
}

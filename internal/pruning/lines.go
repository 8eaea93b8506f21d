package pruning

import (
	"golang.org/x/sync/errgroup"

	"github.com/hailam/hitori-solver/internal/board"
)

// lineRule computes a partial CellState assignment for a single line
// (a row or a column, read left to right) given its integer values.
// The returned slice has the same length as values.
type lineRule func(values []int) []board.CellState

// runLineRule fans lineRule out over g with two goroutines, one
// walking every row and one walking every column, and assembles row
// results and column results into two SolutionGrids which the caller
// combines.
func runLineRule(g *board.Grid, rule lineRule) (rowBoard, colBoard *board.SolutionGrid) {
	rowBoard = board.NewSolutionGrid(g.Size)
	colBoard = board.NewSolutionGrid(g.Size)

	var eg errgroup.Group
	eg.Go(func() error {
		for i := 0; i < g.Size; i++ {
			values := rowValues(g, i)
			result := rule(values)
			for j, v := range result {
				rowBoard.Set(i, j, v)
			}
		}
		return nil
	})
	eg.Go(func() error {
		for j := 0; j < g.Size; j++ {
			values := colValues(g, j)
			result := rule(values)
			for i, v := range result {
				colBoard.Set(i, j, v)
			}
		}
		return nil
	})
	_ = eg.Wait() // lineRule never returns an error

	return rowBoard, colBoard
}

func rowValues(g *board.Grid, row int) []int {
	out := make([]int, g.Size)
	for j := 0; j < g.Size; j++ {
		out[j] = g.At(row, j)
	}
	return out
}

func colValues(g *board.Grid, col int) []int {
	out := make([]int, g.Size)
	for i := 0; i < g.Size; i++ {
		out[i] = g.At(i, col)
	}
	return out
}

// applyLineRule runs rule over every row and column of g and combines
// the two results under forced/non-forced semantics, matching the
// row_board/col_board/transpose/combine_boards pattern of
// original_source/MPI/src/pruning.c.
func applyLineRule(g *board.Grid, rule lineRule, forced bool) *board.SolutionGrid {
	rowBoard, colBoard := runLineRule(g, rule)
	return Combine(rowBoard, colBoard, forced)
}

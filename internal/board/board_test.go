package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hailam/hitori-solver/internal/board"
)

func TestGridAt(t *testing.T) {
	g := board.NewGrid(2, []int{1, 2, 3, 4})
	require.Equal(t, 1, g.At(0, 0))
	require.Equal(t, 4, g.At(1, 1))
}

func TestSolutionGridSetAt(t *testing.T) {
	s := board.NewSolutionGrid(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.Equal(t, board.Unknown, s.At(i, j))
		}
	}
	s.Set(1, 2, board.White)
	require.Equal(t, board.White, s.At(1, 2))
}

func TestSolutionGridCloneEqual(t *testing.T) {
	s := board.NewSolutionGrid(2)
	s.Set(0, 0, board.White)
	clone := s.Clone()
	require.True(t, s.Equal(clone))
	clone.Set(0, 1, board.Black)
	require.False(t, s.Equal(clone))
}

// TestTransposeGridInvolution checks that transposing a grid twice
// returns the original values.
func TestTransposeGridInvolution(t *testing.T) {
	g := board.NewGrid(3, []int{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	tt := board.TransposeGrid(board.TransposeGrid(g))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.Equal(t, g.At(i, j), tt.At(i, j))
		}
	}
}

func TestTransposeSolutionInvolution(t *testing.T) {
	s := board.NewSolutionGrid(3)
	s.Set(0, 1, board.White)
	s.Set(2, 0, board.Black)
	tt := board.TransposeSolution(board.TransposeSolution(s))
	require.True(t, s.Equal(tt))
}

func TestTransposeSwapsRowsAndCols(t *testing.T) {
	s := board.NewSolutionGrid(2)
	s.Set(0, 1, board.White)
	tt := board.TransposeSolution(s)
	require.Equal(t, board.White, tt.At(1, 0))
	require.Equal(t, board.Unknown, tt.At(0, 1))
}

func TestGridKeyIsDeterministicAndDistinguishesGrids(t *testing.T) {
	a := board.NewGrid(2, []int{1, 2, 3, 4})
	b := board.NewGrid(2, []int{1, 2, 3, 4})
	c := board.NewGrid(2, []int{4, 3, 2, 1})
	require.Equal(t, a.Key(), b.Key())
	require.NotEqual(t, a.Key(), c.Key())
}

func TestComputeUnknownIndex(t *testing.T) {
	s := board.NewSolutionGrid(2)
	s.Set(0, 0, board.White)
	idx := board.ComputeUnknownIndex(s)
	require.Equal(t, 1, idx.Len(0))
	require.Equal(t, 1, idx.ColAt(0, 0))
	require.Equal(t, 2, idx.Len(1))
	require.Equal(t, 3, idx.Total())
}

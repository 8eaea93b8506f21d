package backtrack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hailam/hitori-solver/internal/backtrack"
	"github.com/hailam/hitori-solver/internal/bcb"
	"github.com/hailam/hitori-solver/internal/board"
)

// trivialGrid has no repeated values at all: the all-White assignment
// is a valid Hitori solution, and the fixpoint/pruning layer would
// already resolve it, but it is a convenient fully-unknown board for
// exercising the backtracking layer in isolation.
func trivialGrid() *board.Grid {
	return board.NewGrid(2, []int{
		1, 2,
		3, 4,
	})
}

// TestIsCellStateValidRejectsBlackAdjacency checks the no-adjacent-Black rule.
func TestIsCellStateValidRejectsBlackAdjacency(t *testing.T) {
	g := trivialGrid()
	solution := board.NewSolutionGrid(2)
	block := bcb.New(solution)
	block.Solution.Set(0, 0, board.Black)

	require.False(t, backtrack.IsCellStateValid(g, block, 0, 1, board.Black))
	require.True(t, backtrack.IsCellStateValid(g, block, 0, 1, board.White))
}

// TestIsCellStateValidRejectsRepeatedWhiteValue checks the no-repeated-White-value rule.
func TestIsCellStateValidRejectsRepeatedWhiteValue(t *testing.T) {
	g := board.NewGrid(2, []int{
		5, 9,
		5, 1,
	})
	solution := board.NewSolutionGrid(2)
	block := bcb.New(solution)
	block.Solution.Set(0, 0, board.White)

	require.False(t, backtrack.IsCellStateValid(g, block, 1, 0, board.White))
	require.True(t, backtrack.IsCellStateValid(g, block, 1, 0, board.Black))
}

func TestBuildLeafFindsAllWhiteSolution(t *testing.T) {
	g := trivialGrid()
	solution := board.NewSolutionGrid(2)
	idx := board.ComputeUnknownIndex(solution)
	block := bcb.New(solution)
	stride := backtrack.SoloStride()

	ok := backtrack.BuildLeaf(g, block, idx, 0, 0, stride)
	require.True(t, ok)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.Equal(t, board.White, block.Solution.At(i, j))
		}
	}
}

func TestNextLeafEnumeratesDistinctLeaves(t *testing.T) {
	g := board.NewGrid(2, []int{
		1, 1,
		2, 3,
	})
	solution := board.NewSolutionGrid(2)
	idx := board.ComputeUnknownIndex(solution)
	block := bcb.New(solution)
	stride := backtrack.SoloStride()

	require.True(t, backtrack.BuildLeaf(g, block, idx, 0, 0, stride))
	first := block.Solution.Clone()

	ok := backtrack.NextLeaf(g, block, idx, stride)
	if ok {
		require.False(t, first.Equal(block.Solution))
	}
}

func TestInitSubspacePinsCellsNonUnknown(t *testing.T) {
	g := trivialGrid()
	solution := board.NewSolutionGrid(2)
	idx := board.ComputeUnknownIndex(solution)

	block := backtrack.InitSubspace(g, solution, idx, 1, 4)
	pinnedCount := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if block.IsPinned(i, j) {
				pinnedCount++
				require.NotEqual(t, board.Unknown, block.Solution.At(i, j))
			}
		}
	}
	require.Greater(t, pinnedCount, 0)
}

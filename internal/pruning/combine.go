// Package pruning implements the deterministic constraint-propagation
// rules of the Hitori solver: five pure pattern rules over a Grid, a
// combiner that merges partial SolutionGrids, and a fixpoint loop.
package pruning

import "github.com/hailam/hitori-solver/internal/board"

// Combine merges two partial SolutionGrids cell by cell.
//
// forced=true requires the two grids to agree; a disagreement resolves
// to Unknown (used only by the Uniqueness rule to consolidate row and
// column evidence).
//
// forced=false is the monotone join used by every other rule: where
// one side is Unknown and the other is definite, the definite value
// wins; where both are definite and differ, the result is Unknown
// rather than a Black-biased guess, matching the policy used by
// original_source/MPI's combine_boards (see DESIGN.md).
func Combine(a, b *board.SolutionGrid, forced bool) *board.SolutionGrid {
	out := board.NewSolutionGrid(a.Size)
	for i, av := range a.Cells {
		bv := b.Cells[i]
		switch {
		case av == bv:
			out.Cells[i] = av
		case !forced && av == board.Unknown && bv != board.Unknown:
			out.Cells[i] = bv
		case !forced && bv == board.Unknown && av != board.Unknown:
			out.Cells[i] = av
		default:
			out.Cells[i] = board.Unknown
		}
	}
	return out
}

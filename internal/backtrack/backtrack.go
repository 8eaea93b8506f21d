// Package backtrack implements the leaf-construction backtracking
// search over a converged board's UnknownIndex: InitSubspace carves
// out a disjoint solution subspace, BuildLeaf/NextLeaf enumerate its
// leaves in an order that lets multiple workers cooperatively
// skip-stride through one subspace. Grounded on
// original_source/MPI/src/backtracking.h.
package backtrack

import (
	"github.com/hailam/hitori-solver/internal/bcb"
	"github.com/hailam/hitori-solver/internal/board"
)

// Stride tracks the cooperative skip-stride state for a subspace
// being enumerated by more than one worker: the first SolutionsToSkip
// complete assignments reached are rejected, the next one is
// accepted, and from then on one in every TotalProcessesInSpace is
// accepted. With TotalProcessesInSpace == 1 every leaf is accepted.
// Grounded on build_leaf's solutions_to_skip/
// total_processes_in_solution_space parameters, which are mutated by
// REFRESH_SOLUTION_SPACE when a subspace gains a cooperating worker.
type Stride struct {
	SolutionsToSkip       int
	TotalProcessesInSpace int
}

// SoloStride is the stride state for a subspace enumerated by exactly
// one worker: every leaf is accepted.
func SoloStride() *Stride {
	return &Stride{SolutionsToSkip: 0, TotalProcessesInSpace: 1}
}

// IsCellStateValid reports whether setting (row, col) to state in
// block.Solution would keep Rule 1 (no repeated White value on its
// line) and Rule 2 (no Black-adjacent-to-Black) satisfied against the
// cells already decided in block. It does not check connectivity
// (Rule 3), which is only checkable once the board is complete; see
// internal/validate. Grounded on
// original_source/MPI/src/backtracking.h:is_cell_state_valid.
func IsCellStateValid(g *board.Grid, block *bcb.BCB, row, col int, state board.CellState) bool {
	n := g.Size
	switch state {
	case board.Black:
		if row > 0 && block.Solution.At(row-1, col) == board.Black {
			return false
		}
		if row < n-1 && block.Solution.At(row+1, col) == board.Black {
			return false
		}
		if col > 0 && block.Solution.At(row, col-1) == board.Black {
			return false
		}
		if col < n-1 && block.Solution.At(row, col+1) == board.Black {
			return false
		}
	case board.White:
		value := g.At(row, col)
		for i := 0; i < n; i++ {
			if i != row && g.At(i, col) == value && block.Solution.At(i, col) == board.White {
				return false
			}
		}
		for j := 0; j < n; j++ {
			if j != col && g.At(row, j) == value && block.Solution.At(row, j) == board.White {
				return false
			}
		}
	}
	return true
}

// BuildLeaf recursively assigns every unknown cell from (ukRow, ukCol)
// onward (in UnknownIndex coordinates), trying White before Black at
// each non-pinned cell and leaving pinned cells at their subspace
// value. It returns true once a complete, locally-valid leaf has been
// built and accepted under stride's skip-countdown. Grounded on
// original_source/MPI/src/backtracking.h:build_leaf.
func BuildLeaf(g *board.Grid, block *bcb.BCB, idx *board.UnknownIndex, ukRow, ukCol int, stride *Stride) bool {
	for ukRow < idx.Size && ukCol >= idx.Len(ukRow) {
		ukRow++
		ukCol = 0
	}

	if ukRow == idx.Size {
		if stride.TotalProcessesInSpace > 1 {
			stride.SolutionsToSkip--
			if stride.SolutionsToSkip == -1 {
				stride.SolutionsToSkip = stride.TotalProcessesInSpace - 1
			} else {
				return false
			}
		}
		return true
	}

	col := idx.ColAt(ukRow, ukCol)
	pinned := block.IsPinned(ukRow, col)
	cellState := block.Solution.At(ukRow, col)
	if !pinned && cellState == board.Unknown {
		cellState = board.White
	}

	for attempt := 0; attempt < 2; attempt++ {
		if IsCellStateValid(g, block, ukRow, col, cellState) {
			block.Solution.Set(ukRow, col, cellState)
			if BuildLeaf(g, block, idx, ukRow, ukCol+1, stride) {
				return true
			}
		}
		if pinned {
			break
		}
		cellState = board.Black
	}
	if !pinned {
		block.Solution.Set(ukRow, col, board.Unknown)
	}
	return false
}

// NextLeaf backs up from the current leaf to the next candidate: it
// scans unknowns from the bottom-right, flips the last White cell it
// finds to Black and re-runs BuildLeaf from there, clearing every
// cell it passes over. It returns false once the scan reaches a
// pinned cell, meaning the subspace is exhausted. Grounded on
// original_source/MPI/src/backtracking.h:next_leaf.
func NextLeaf(g *board.Grid, block *bcb.BCB, idx *board.UnknownIndex, stride *Stride) bool {
	for row := idx.Size - 1; row >= 0; row-- {
		for k := idx.Len(row) - 1; k >= 0; k-- {
			col := idx.ColAt(row, k)
			if block.IsPinned(row, col) {
				return false
			}

			cellState := block.Solution.At(row, col)
			if cellState == board.Unknown {
				return false
			}

			if cellState == board.White {
				if IsCellStateValid(g, block, row, col, board.Black) {
					block.Solution.Set(row, col, board.Black)
					if BuildLeaf(g, block, idx, row, k+1, stride) {
						return true
					}
				}
			}

			block.Solution.Set(row, col, board.Unknown)
		}
	}
	return false
}

// InitSubspace pins the first ⌈log2(numSpaces)⌉ unknowns (in
// UnknownIndex scan order) to the bits of spaceID, one bit per cell,
// bit 0 selecting White (0) or Black (1). If a bit's preferred color
// is locally invalid, the opposite color is tried instead; if both
// are invalid the cell is left unpinned and the same bit is retried
// at the next unknown. Grounded on
// original_source/MPI/src/backtracking.h:init_solution_space.
func InitSubspace(g *board.Grid, converged *board.SolutionGrid, idx *board.UnknownIndex, spaceID, numSpaces int) *bcb.BCB {
	block := bcb.New(converged)
	remainingSpaces := numSpaces - 1
	if remainingSpaces <= 0 {
		return block
	}

	for row := 0; row < idx.Size; row++ {
		done := false
		for k := 0; k < idx.Len(row); k++ {
			col := idx.ColAt(row, k)
			choice := board.CellState(spaceID % 2)
			if !IsCellStateValid(g, block, row, col, choice) {
				choice = board.CellState(1 - int(choice))
				if !IsCellStateValid(g, block, row, col, choice) {
					continue
				}
			}

			block.Pin(row, col, choice)
			if spaceID > 0 {
				spaceID /= 2
			}
			if remainingSpaces > 0 {
				remainingSpaces /= 2
			}
			if remainingSpaces == 0 {
				done = true
				break
			}
		}
		if done {
			break
		}
	}
	return block
}

// Package bcb implements the Block Control Block: the unit of work
// handed between workers and queued by each worker's solution-space
// queue. Grounded on
// original_source/MPI/include/common.h's BCB/Queue structs and
// original_source/MPI/src/backtracking.h's block_to_buffer/
// buffer_to_block wire encoding.
package bcb

import "github.com/hailam/hitori-solver/internal/board"

// BCB is a partial SolutionGrid together with a pinned mask, both
// indexed in full grid coordinates. A cell with Pinned[i]==true has
// been fixed by subspace partitioning (internal/backtrack.InitSubspace)
// and must never be altered by BuildLeaf/NextLeaf.
type BCB struct {
	Solution *board.SolutionGrid
	Pinned   []bool // len == Solution.Size*Solution.Size, row-major
}

// New builds a BCB from a converged pruning solution, with no pinned
// cells yet; InitSubspace pins a prefix of unknowns into it.
func New(solution *board.SolutionGrid) *BCB {
	return &BCB{
		Solution: solution.Clone(),
		Pinned:   make([]bool, solution.Size*solution.Size),
	}
}

// Clone deep-copies a BCB so a donor worker can hand off a subspace
// without aliasing the sender's queue entry.
func (b *BCB) Clone() *BCB {
	pinned := make([]bool, len(b.Pinned))
	copy(pinned, b.Pinned)
	return &BCB{
		Solution: b.Solution.Clone(),
		Pinned:   pinned,
	}
}

// IsPinned reports whether (row, col) was fixed by subspace
// partitioning.
func (b *BCB) IsPinned(row, col int) bool {
	return b.Pinned[row*b.Solution.Size+col]
}

// Pin marks (row, col) as fixed and sets its value.
func (b *BCB) Pin(row, col int, v board.CellState) {
	b.Solution.Set(row, col, v)
	b.Pinned[row*b.Solution.Size+col] = true
}

// ToBuffer serializes a BCB the way block_to_buffer does: the
// solution's cell states (size*size ints) followed by the pinned mask
// (size*size ints, 1 or 0), suitable for sending as a flat []int over
// a transport.Message's Buffer field.
func (b *BCB) ToBuffer() []int {
	n := b.Solution.Size * b.Solution.Size
	buf := make([]int, 2*n)
	for i, c := range b.Solution.Cells {
		buf[i] = int(c)
	}
	for i, pinned := range b.Pinned {
		if pinned {
			buf[n+i] = 1
		}
	}
	return buf
}

// FromBuffer deserializes a buffer produced by ToBuffer back into a
// BCB, given the board size. Grounded on buffer_to_block.
func FromBuffer(size int, buf []int) *BCB {
	n := size * size
	solution := board.NewSolutionGrid(size)
	for i := 0; i < n; i++ {
		solution.Cells[i] = board.CellState(buf[i])
	}
	pinned := make([]bool, n)
	for i := 0; i < n; i++ {
		pinned[i] = buf[n+i] == 1
	}
	return &BCB{Solution: solution, Pinned: pinned}
}

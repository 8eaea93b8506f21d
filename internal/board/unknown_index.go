package board

// UnknownIndex is the row-major list of cells still Unknown once
// pruning has converged. All subspace identifiers, leaf enumeration
// and stride arithmetic operate in this reduced coordinate system:
// position (row, k) in the index refers to grid column Cols[row][k].
type UnknownIndex struct {
	Size int
	// Cols[row] holds the column indices, in ascending order, of the
	// cells in that row that are still Unknown.
	Cols [][]int
}

// ComputeUnknownIndex scans a converged SolutionGrid and builds the
// per-row list of still-Unknown column indices.
func ComputeUnknownIndex(s *SolutionGrid) *UnknownIndex {
	idx := &UnknownIndex{Size: s.Size, Cols: make([][]int, s.Size)}
	for i := 0; i < s.Size; i++ {
		row := make([]int, 0, s.Size)
		for j := 0; j < s.Size; j++ {
			if s.At(i, j) == Unknown {
				row = append(row, j)
			}
		}
		idx.Cols[i] = row
	}
	return idx
}

// Total returns the number of still-Unknown cells.
func (u *UnknownIndex) Total() int {
	n := 0
	for _, row := range u.Cols {
		n += len(row)
	}
	return n
}

// Len returns the number of unknown cells in the given row.
func (u *UnknownIndex) Len(row int) int {
	return len(u.Cols[row])
}

// ColAt returns the grid column of the k-th unknown in the given row.
func (u *UnknownIndex) ColAt(row, k int) int {
	return u.Cols[row][k]
}

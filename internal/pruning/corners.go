package pruning

import "github.com/hailam/hitori-solver/internal/board"

// cornerType identifies which of the grid's four 2x2 corners is under
// consideration. Grounded on original_source/MPI/src/pruning.c's
// CornerType enum.
type cornerType int

const (
	topLeft cornerType = iota
	topRight
	bottomLeft
	bottomRight
)

// corner2x2 names the four cells of a corner block, all as (row, col)
// coordinates in the full grid.
type corner2x2 struct {
	kind                                           cornerType
	tlRow, tlCol, trRow, trCol                     int
	blRow, blCol, brRow, brCol                     int
}

// Corners applies the four corner sub-rules (triple corner, pair
// corner, quad corner, corner-close) to each of the board's four 2x2
// corners and combines the four partial results. Grounded on
// original_source/MPI/src/pruning.c:mpi_corner_cases / compute_corner.
func Corners(g *board.Grid, current *board.SolutionGrid) *board.SolutionGrid {
	n := g.Size
	blocks := []corner2x2{
		{kind: topLeft, tlRow: 0, tlCol: 0, trRow: 0, trCol: 1, blRow: 1, blCol: 0, brRow: 1, brCol: 1},
		{kind: topRight, tlRow: 0, tlCol: n - 2, trRow: 0, trCol: n - 1, blRow: 1, blCol: n - 2, brRow: 1, brCol: n - 1},
		{kind: bottomLeft, tlRow: n - 2, tlCol: 0, trRow: n - 2, trCol: 1, blRow: n - 1, blCol: 0, brRow: n - 1, brCol: 1},
		{kind: bottomRight, tlRow: n - 2, tlCol: n - 2, trRow: n - 2, trCol: n - 1, blRow: n - 1, blCol: n - 2, brRow: n - 1, brCol: n - 1},
	}

	results := make([]*board.SolutionGrid, len(blocks))
	for i, c := range blocks {
		results[i] = computeCorner(g, current, c)
	}

	topCorners := Combine(results[0], results[1], false)
	bottomCorners := Combine(results[2], results[3], false)
	return Combine(topCorners, bottomCorners, false)
}

func computeCorner(g *board.Grid, current *board.SolutionGrid, c corner2x2) *board.SolutionGrid {
	out := board.NewSolutionGrid(g.Size)

	topLeftVal := g.At(c.tlRow, c.tlCol)
	topRightVal := g.At(c.trRow, c.trCol)
	bottomLeftVal := g.At(c.blRow, c.blCol)
	bottomRightVal := g.At(c.brRow, c.brCol)

	set := func(row, col int, v board.CellState) { out.Set(row, col, v) }

	// Triple corner: three equal values force the shared-angle cell
	// Black and its two line-neighbors White.
	switch c.kind {
	case topLeft, bottomRight:
		switch {
		case topLeftVal == topRightVal && topLeftVal == bottomLeftVal:
			set(c.tlRow, c.tlCol, board.Black)
			set(c.trRow, c.trCol, board.White)
			set(c.blRow, c.blCol, board.White)
		case bottomRightVal == topRightVal && bottomRightVal == bottomLeftVal:
			set(c.brRow, c.brCol, board.Black)
			set(c.blRow, c.blCol, board.White)
			set(c.trRow, c.trCol, board.White)
		}
	case topRight, bottomLeft:
		switch {
		case topLeftVal == topRightVal && topRightVal == bottomRightVal:
			set(c.trRow, c.trCol, board.Black)
			set(c.tlRow, c.tlCol, board.White)
			set(c.brRow, c.brCol, board.White)
		case bottomLeftVal == topLeftVal && bottomLeftVal == bottomRightVal:
			set(c.blRow, c.blCol, board.Black)
			set(c.tlRow, c.tlCol, board.White)
			set(c.brRow, c.brCol, board.White)
		}
	}

	// Pair corner: any single matching pair forces one specific cell
	// White, regardless of which pair matched.
	switch c.kind {
	case topLeft, bottomRight:
		switch {
		case topLeftVal == topRightVal:
			set(c.blRow, c.blCol, board.White)
		case topLeftVal == bottomLeftVal:
			set(c.trRow, c.trCol, board.White)
		case bottomLeftVal == bottomRightVal:
			set(c.trRow, c.trCol, board.White)
		case topRightVal == bottomRightVal:
			set(c.blRow, c.blCol, board.White)
		}
	case topRight, bottomLeft:
		switch {
		case topLeftVal == topRightVal:
			set(c.brRow, c.brCol, board.White)
		case topRightVal == bottomRightVal:
			set(c.tlRow, c.tlCol, board.White)
		case bottomLeftVal == bottomRightVal:
			set(c.tlRow, c.tlCol, board.White)
		case topLeftVal == bottomLeftVal:
			set(c.brRow, c.brCol, board.White)
		}
	}

	// Quad corner: all four equal, or both column pairs equal, or both
	// row pairs equal, forces the diagonal through the grid's corner
	// cell Black and the other diagonal White.
	if (topLeftVal == topRightVal && topLeftVal == bottomLeftVal && topLeftVal == bottomRightVal) ||
		(topRightVal == bottomRightVal && topLeftVal == bottomLeftVal) ||
		(topLeftVal == topRightVal && bottomLeftVal == bottomRightVal) {
		switch c.kind {
		case topLeft, bottomRight:
			set(c.tlRow, c.tlCol, board.Black)
			set(c.trRow, c.trCol, board.White)
			set(c.blRow, c.blCol, board.White)
			set(c.brRow, c.brCol, board.Black)
		case topRight, bottomLeft:
			set(c.tlRow, c.tlCol, board.White)
			set(c.trRow, c.trCol, board.Black)
			set(c.blRow, c.blCol, board.Black)
			set(c.brRow, c.brCol, board.White)
		}
	}

	// Corner-close: if one of the two non-angle cells is already
	// Black, the other must be White.
	switch c.kind {
	case topLeft, bottomRight:
		if current.At(c.trRow, c.trCol) == board.Black {
			set(c.blRow, c.blCol, board.White)
		} else if current.At(c.blRow, c.blCol) == board.Black {
			set(c.trRow, c.trCol, board.White)
		}
	case topRight, bottomLeft:
		if current.At(c.tlRow, c.tlCol) == board.Black {
			set(c.brRow, c.brCol, board.White)
		} else if current.At(c.brRow, c.brCol) == board.Black {
			set(c.tlRow, c.tlCol, board.White)
		}
	}

	return out
}

package pruning

import "github.com/hailam/hitori-solver/internal/board"

// Uniqueness marks White any cell whose value appears exactly once in
// its row and exactly once in its column; the row and column results
// are merged in forced mode, so uniqueness in only one of the two
// leaves the cell Unknown. Grounded on original_source/MPI/src/pruning.c:mpi_uniqueness_rule.
func Uniqueness(g *board.Grid) *board.SolutionGrid {
	return applyLineRule(g, uniquenessLine, true)
}

func uniquenessLine(values []int) []board.CellState {
	out := make([]board.CellState, len(values))
	for j := range out {
		out[j] = board.Unknown
	}
	for j, v := range values {
		unique := true
		for k, w := range values {
			if k != j && w == v {
				unique = false
				break
			}
		}
		if unique {
			out[j] = board.White
		}
	}
	return out
}

// SandwichRules applies both the sandwich-triple and sandwich-pair
// patterns in a single pass over every line, matching
// original_source/MPI/src/pruning.c:mpi_sandwich_rules (which computes
// both triple and pair together per window).
func SandwichRules(g *board.Grid) *board.SolutionGrid {
	return applyLineRule(g, sandwichLine, false)
}

func sandwichLine(values []int) []board.CellState {
	n := len(values)
	out := make([]board.CellState, n)
	for j := range out {
		out[j] = board.Unknown
	}
	for j := 0; j <= n-3; j++ {
		v1, v2, v3 := values[j], values[j+1], values[j+2]
		switch {
		case v1 == v2 && v2 == v3:
			// Sandwich-triple: edges Black, middle White, and the
			// cells bracketing the triple (if they exist) are White.
			out[j] = board.Black
			out[j+1] = board.White
			out[j+2] = board.Black
			if j-1 >= 0 {
				out[j-1] = board.White
			}
			if j+3 < n {
				out[j+3] = board.White
			}
		case v1 != v2 && v1 == v3:
			// Sandwich-pair: a b a with a != b => middle White.
			out[j+1] = board.White
		}
	}
	return out
}

// PairIsolation marks Black any isolated occurrence of a value that
// also forms an adjacent duplicate pair elsewhere in the same line,
// and sets that cell's line-neighbors White. Grounded on
// original_source/MPI/src/pruning.c:mpi_pair_isolation.
func PairIsolation(g *board.Grid) *board.SolutionGrid {
	return applyLineRule(g, pairIsolationLine, false)
}

func pairIsolationLine(values []int) []board.CellState {
	n := len(values)
	out := make([]board.CellState, n)
	for j := range out {
		out[j] = board.Unknown
	}
	for j := 0; j <= n-2; j++ {
		if values[j] != values[j+1] {
			continue
		}
		pairValue := values[j]
		for k := 0; k < n; k++ {
			if k == j || k == j+1 || values[k] != pairValue {
				continue
			}
			isolated := true
			if k-1 >= 0 && values[k-1] == pairValue {
				isolated = false
			}
			if k+1 < n && values[k+1] == pairValue {
				isolated = false
			}
			if !isolated {
				continue
			}
			out[k] = board.Black
			if k-1 >= 0 {
				out[k-1] = board.White
			}
			if k+1 < n {
				out[k+1] = board.White
			}
		}
	}
	return out
}

// FlankedIsolation marks Black any isolated occurrence of either value
// in an "a b b a" (a != b) pattern elsewhere in the same line, and
// sets that cell's line-neighbors White. Grounded on
// original_source/MPI/src/pruning.c:mpi_flanked_isolation.
func FlankedIsolation(g *board.Grid) *board.SolutionGrid {
	return applyLineRule(g, flankedIsolationLine, false)
}

func flankedIsolationLine(values []int) []board.CellState {
	n := len(values)
	out := make([]board.CellState, n)
	for j := range out {
		out[j] = board.Unknown
	}
	for j := 0; j <= n-4; j++ {
		v1, v2, v3, v4 := values[j], values[j+1], values[j+2], values[j+3]
		if !(v1 == v4 && v2 == v3 && v1 != v2) {
			continue
		}
		for k := 0; k < n; k++ {
			if k == j || k == j+1 || k == j+2 || k == j+3 {
				continue
			}
			if values[k] != v1 && values[k] != v2 {
				continue
			}
			out[k] = board.Black
			if k-1 >= 0 {
				out[k-1] = board.White
			}
			if k+1 < n {
				out[k+1] = board.White
			}
		}
	}
	return out
}

// SetWhitePropagation marks Black every other same-value cell in the
// row/column of an already-White cell, with White neighbors for each
// such Black. Grounded on
// original_source/MPI/src/pruning.c:mpi_set_white.
func SetWhitePropagation(g *board.Grid, current *board.SolutionGrid) *board.SolutionGrid {
	rule := func(gridValues, solValues []int) []board.CellState {
		n := len(gridValues)
		out := make([]board.CellState, n)
		for j := range out {
			out[j] = board.Unknown
		}
		for j := 0; j < n; j++ {
			if board.CellState(solValues[j]) != board.White {
				continue
			}
			v := gridValues[j]
			for k := 0; k < n; k++ {
				if k == j || gridValues[k] != v {
					continue
				}
				out[k] = board.Black
				if k-1 >= 0 {
					out[k-1] = board.White
				}
				if k+1 < n {
					out[k+1] = board.White
				}
			}
		}
		return out
	}
	return applySolutionLineRule(g, current, rule)
}

// SetBlackPropagation marks White every 4-orthogonal neighbor of a
// Black cell. Grounded on
// original_source/MPI/src/pruning.c:mpi_set_black.
func SetBlackPropagation(g *board.Grid, current *board.SolutionGrid) *board.SolutionGrid {
	rule := func(gridValues, solValues []int) []board.CellState {
		n := len(gridValues)
		out := make([]board.CellState, n)
		for j := range out {
			out[j] = board.Unknown
		}
		for j := 0; j < n; j++ {
			if board.CellState(solValues[j]) != board.Black {
				continue
			}
			if j-1 >= 0 {
				out[j-1] = board.White
			}
			if j+1 < n {
				out[j+1] = board.White
			}
		}
		return out
	}
	return applySolutionLineRule(g, current, rule)
}

// solutionLineRule is like lineRule but also sees the current solution
// state of the line, which set-white/set-black propagation need.
type solutionLineRule func(gridValues, solValues []int) []board.CellState

func applySolutionLineRule(g *board.Grid, current *board.SolutionGrid, rule solutionLineRule) *board.SolutionGrid {
	rowBoard := board.NewSolutionGrid(g.Size)
	for i := 0; i < g.Size; i++ {
		gv := rowValues(g, i)
		sv := make([]int, g.Size)
		for j := 0; j < g.Size; j++ {
			sv[j] = int(current.At(i, j))
		}
		result := rule(gv, sv)
		for j, v := range result {
			rowBoard.Set(i, j, v)
		}
	}

	colBoard := board.NewSolutionGrid(g.Size)
	for j := 0; j < g.Size; j++ {
		gv := colValues(g, j)
		sv := make([]int, g.Size)
		for i := 0; i < g.Size; i++ {
			sv[i] = int(current.At(i, j))
		}
		result := rule(gv, sv)
		for i, v := range result {
			colBoard.Set(i, j, v)
		}
	}

	return Combine(rowBoard, colBoard, false)
}

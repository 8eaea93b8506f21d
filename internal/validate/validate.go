// Package validate implements the full Hitori legality check: Rule 1
// (no repeated White value per line), Rule 2 (no Black-adjacent-Black)
// and Rule 3 (White cells form one 4-connected region), checked over a
// complete grid. The per-cell predicate used during search is
// backtrack.IsCellStateValid, not part of this package. Grounded on original_source/MPI/src/validation.c and
// src/backtracking.h:check_hitori_conditions.
package validate

import "github.com/hailam/hitori-solver/internal/board"

// Result reports why a completed SolutionGrid failed validation, or
// that it passed.
type Result struct {
	OK     bool
	Reason string
}

func ok() Result { return Result{OK: true} }

func fail(reason string) Result { return Result{OK: false, Reason: reason} }

// Validate runs Rule 1, Rule 2 and Rule 3 (via BFS connectivity) over
// a complete SolutionGrid. Grounded on
// original_source/MPI/src/backtracking.h:check_hitori_conditions,
// which additionally rejects any remaining Unknown cell.
func Validate(g *board.Grid, solution *board.SolutionGrid) Result {
	n := g.Size
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch solution.At(i, j) {
			case board.Unknown:
				return fail("cell left unknown")
			case board.White:
				if !whiteLineUnique(g, solution, i, j) {
					return fail("repeated White value on a line")
				}
			case board.Black:
				if blackHasBlackNeighbor(solution, i, j) {
					return fail("adjacent Black cells")
				}
			}
		}
	}
	if !AllWhiteCellsConnected(solution) {
		return fail("White region is not single connected area")
	}
	return ok()
}

func whiteLineUnique(g *board.Grid, solution *board.SolutionGrid, row, col int) bool {
	n := g.Size
	value := g.At(row, col)
	for k := 0; k < n; k++ {
		if k != row && solution.At(k, col) == board.White && g.At(k, col) == value {
			return false
		}
	}
	for k := 0; k < n; k++ {
		if k != col && solution.At(row, k) == board.White && g.At(row, k) == value {
			return false
		}
	}
	return true
}

func blackHasBlackNeighbor(solution *board.SolutionGrid, row, col int) bool {
	n := solution.Size
	if row > 0 && solution.At(row-1, col) == board.Black {
		return true
	}
	if row < n-1 && solution.At(row+1, col) == board.Black {
		return true
	}
	if col > 0 && solution.At(row, col-1) == board.Black {
		return true
	}
	if col < n-1 && solution.At(row, col+1) == board.Black {
		return true
	}
	return false
}

// AllWhiteCellsConnected implements Rule 3 with a breadth-first search
// from the first White cell found in row-major order, matching
// original_source/MPI/src/validation.c:bfs_white_cells /
// all_white_cells_connected.
func AllWhiteCellsConnected(solution *board.SolutionGrid) bool {
	n := solution.Size
	startRow, startCol, whiteCount := -1, -1, 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if solution.At(i, j) == board.White {
				whiteCount++
				if startRow == -1 {
					startRow, startCol = i, j
				}
			}
		}
	}
	if whiteCount == 0 {
		return true
	}

	visited := make([]bool, n*n)
	type cell struct{ row, col int }
	queue := []cell{{startRow, startCol}}
	visited[startRow*n+startCol] = true
	reached := 0

	dirs := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		reached++

		for _, d := range dirs {
			nr, nc := c.row+d[0], c.col+d[1]
			if nr < 0 || nr >= n || nc < 0 || nc >= n {
				continue
			}
			if visited[nr*n+nc] || solution.At(nr, nc) != board.White {
				continue
			}
			visited[nr*n+nc] = true
			queue = append(queue, cell{nr, nc})
		}
	}

	return reached == whiteCount
}

// ConnectedWhiteCellsDFS is the depth-first alternative to
// AllWhiteCellsConnected, kept because original_source/MPI's
// backtracking.h uses the DFS form of the same check while
// validation.c offers the BFS form; both must agree (see
// validate_test.go).
func ConnectedWhiteCellsDFS(solution *board.SolutionGrid) bool {
	n := solution.Size
	startRow, startCol, whiteCount := -1, -1, 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if solution.At(i, j) == board.White {
				whiteCount++
				if startRow == -1 {
					startRow, startCol = i, j
				}
			}
		}
	}
	if whiteCount == 0 {
		return true
	}

	visited := make([]bool, n*n)
	count := dfsWhite(solution, visited, startRow, startCol)
	return count == whiteCount
}

func dfsWhite(solution *board.SolutionGrid, visited []bool, row, col int) int {
	n := solution.Size
	if row < 0 || row >= n || col < 0 || col >= n {
		return 0
	}
	if visited[row*n+col] {
		return 0
	}
	if solution.At(row, col) != board.White {
		return 0
	}
	visited[row*n+col] = true
	count := 1
	count += dfsWhite(solution, visited, row-1, col)
	count += dfsWhite(solution, visited, row+1, col)
	count += dfsWhite(solution, visited, row, col-1)
	count += dfsWhite(solution, visited, row, col+1)
	return count
}

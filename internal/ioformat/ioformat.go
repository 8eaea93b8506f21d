// Package ioformat reads and writes the whitespace-separated integer
// grid format and the O/X/? solution format. Grounded on
// original_source/MPI/src/board.c's read_board/print_board.
package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hailam/hitori-solver/internal/board"
)

// ParseGrid reads a square grid of whitespace-separated integers, one
// row per line. It returns an error if any row's length disagrees
// with the first row's, or the grid is not square.
func ParseGrid(r io.Reader) (*board.Grid, error) {
	scanner := bufio.NewScanner(r)
	var rows [][]int
	cols := -1

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("ioformat: invalid integer %q on row %d: %w", f, len(rows)+1, err)
			}
			row[i] = v
		}
		if cols == -1 {
			cols = len(row)
		} else if len(row) != cols {
			return nil, fmt.Errorf("ioformat: row %d has %d columns, expected %d", len(rows)+1, len(row), cols)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(rows) != cols {
		return nil, fmt.Errorf("ioformat: board must be square, got %d rows and %d columns", len(rows), cols)
	}

	vals := make([]int, 0, len(rows)*cols)
	for _, row := range rows {
		vals = append(vals, row...)
	}
	return board.NewGrid(len(rows), vals), nil
}

// WriteGrid writes a Grid back in the space-separated integer format.
func WriteGrid(w io.Writer, g *board.Grid) error {
	var sb strings.Builder
	for i := 0; i < g.Size; i++ {
		for j := 0; j < g.Size; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(g.At(i, j)))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteSolution renders a SolutionGrid using the O (White) / X
// (Black) / ? (Unknown) token format, matching print_board's SOLUTION
// mode.
func WriteSolution(w io.Writer, title string, s *board.SolutionGrid) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n# --- %s --- #\n", title)
	for i := 0; i < s.Size; i++ {
		for j := 0; j < s.Size; j++ {
			switch s.At(i, j) {
			case board.White:
				sb.WriteString("O ")
			case board.Black:
				sb.WriteString("X ")
			default:
				sb.WriteString("? ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

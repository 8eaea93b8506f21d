package pruning

import "github.com/hailam/hitori-solver/internal/board"

// Run applies all five pattern rules once, combines them with the
// corner cases, and then iterates Set-white/Set-black propagation to a
// fixpoint. The result is the converged SolutionGrid handed to
// internal/backtrack as the seed for UnknownIndex construction.
//
// Grounded on original_source/MPI/src/main.c's pruning phase, which
// runs each rule once, combines all of them, then loops set_white and
// set_black until the board stops changing.
func Run(g *board.Grid) *board.SolutionGrid {
	solution := Uniqueness(g)

	solution = Combine(solution, SandwichRules(g), false)
	solution = Combine(solution, PairIsolation(g), false)
	solution = Combine(solution, FlankedIsolation(g), false)
	solution = Combine(solution, Corners(g, solution), false)

	return Fixpoint(g, solution)
}

// Fixpoint repeatedly combines the current board with the results of
// Set-white and Set-black propagation until an iteration changes
// nothing. The two propagation rules only ever add information, so
// this always terminates and the result is independent of how many
// times it's re-run once converged.
func Fixpoint(g *board.Grid, seed *board.SolutionGrid) *board.SolutionGrid {
	current := seed
	for {
		next := Combine(current, SetWhitePropagation(g, current), false)
		next = Combine(next, SetBlackPropagation(g, next), false)
		if next.Equal(current) {
			return next
		}
		current = next
	}
}

// Package cluster wires a pruning fixpoint and a fixed set of worker
// peers plus one manager peer into a single run: it owns the
// internal/transport.Fabric every peer goroutine communicates
// through, seeds initial subspaces, drives the cluster to
// termination, and reports the terminal solution (or its absence).
// Grounded on original_source/MPI/src/main.c's top-level driver and
// _examples/hailam-chessplay's internal/engine.Engine goroutine
// orchestration.
package cluster

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hailam/hitori-solver/internal/board"
	"github.com/hailam/hitori-solver/internal/config"
	"github.com/hailam/hitori-solver/internal/manager"
	"github.com/hailam/hitori-solver/internal/pruning"
	"github.com/hailam/hitori-solver/internal/transport"
	"github.com/hailam/hitori-solver/internal/worker"
)

// Options configures a single solver run.
type Options struct {
	NumWorkers     int
	NumSpaces      int
	QueueCapacity  int
	Logger         zerolog.Logger
}

// Result is the outcome of a complete run.
type Result struct {
	RunID    string
	Solved   bool
	FoundBy  int
	Solution *board.SolutionGrid
}

// Run executes one full solve: converge the pruning fixpoint, seed
// NumSpaces initial subspaces across NumWorkers peers (by index modulo
// worker count), and drive the worker/manager protocol until a
// solution is found or the search space is exhausted.
func Run(ctx context.Context, g *board.Grid, opts Options) Result {
	runID := uuid.New().String()
	log := opts.Logger.With().Str("run_id", runID).Logger()

	converged := pruning.Run(g)
	idx := board.ComputeUnknownIndex(converged)

	numWorkers := opts.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	numSpaces := opts.NumSpaces
	if numSpaces < 1 {
		numSpaces = config.DefaultSolutionSpaces
	}
	queueCapacity := opts.QueueCapacity
	if queueCapacity < numSpaces {
		queueCapacity = numSpaces
	}

	fabric := transport.NewFabric(numWorkers)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	mgr := manager.New(numWorkers, fabric, log)
	go mgr.Run(runCtx)

	outcomes := make(chan *worker.Outcome, numWorkers)
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for rank := 0; rank < numWorkers; rank++ {
		rank := rank
		go func() {
			defer wg.Done()
			w := worker.New(rank, numWorkers, g, idx, fabric, queueCapacity, log)
			if seeded := w.SeedInitialSubspaces(converged, numSpaces); seeded != nil {
				outcomes <- seeded
				return
			}
			outcomes <- w.Run(runCtx)
		}()
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var found *worker.Outcome
	for outcome := range outcomes {
		if outcome != nil && outcome.Found && found == nil {
			found = outcome
			cancel()
		}
	}

	if found == nil {
		log.Info().Msg("search space exhausted without a solution")
		return Result{RunID: runID, Solved: false}
	}

	log.Info().Int("found_by", found.FoundBy).Msg("solve complete")
	return Result{RunID: runID, Solved: true, FoundBy: found.FoundBy, Solution: found.Solution}
}

// String renders a Result for CLI/log output.
func (r Result) String() string {
	if !r.Solved {
		return fmt.Sprintf("run %s: no solution found", r.RunID)
	}
	return fmt.Sprintf("run %s: solved by worker %d", r.RunID, r.FoundBy)
}

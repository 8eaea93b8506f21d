// Package worker implements the per-peer backtracking state machine:
// each Worker is driven by its own goroutine and communicates with
// the manager and other workers strictly through an
// internal/transport.Fabric. Grounded on original_source/MPI/src/main.c's
// worker loop (worker_check_messages, worker_send_work,
// worker_receive_work) and shaped after
// _examples/hailam-chessplay's internal/engine.Worker.
package worker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hailam/hitori-solver/internal/backtrack"
	"github.com/hailam/hitori-solver/internal/bcb"
	"github.com/hailam/hitori-solver/internal/board"
	"github.com/hailam/hitori-solver/internal/transport"
	"github.com/hailam/hitori-solver/internal/validate"
)

// State is one of the five states a worker cycles through.
type State int

const (
	StateLocalWork State = iota
	StateIdle
	StateSharingFollower
	StateSharingMaster
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateLocalWork:
		return "local_work"
	case StateIdle:
		return "idle"
	case StateSharingFollower:
		return "sharing_follower"
	case StateSharingMaster:
		return "sharing_master"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Outcome is what a worker's Run returns: either it found the
// solution itself, another peer did and told it to stop, or the
// search space was exhausted with no solution.
type Outcome struct {
	Found    bool
	Solution *board.SolutionGrid
	FoundBy  int
}

// Worker is one peer in the cluster. grid and idx are immutable,
// read-only inputs shared by every peer (the converged puzzle and its
// UnknownIndex); all mutable search state below is private to this
// worker and reachable only through Fabric messages.
type Worker struct {
	Rank       int
	NumWorkers int

	grid   *board.Grid
	idx    *board.UnknownIndex
	fabric *transport.Fabric
	log    zerolog.Logger

	queue  *bcb.Queue
	stride *backtrack.Stride

	// masterProcess is -1 when this worker owns its own subspace
	// (solo or as SharingMaster); otherwise it is the rank this
	// worker follows as a SharingFollower.
	masterProcess int
	// followers holds the ranks currently following this worker's
	// subspace, populated only while state == StateSharingMaster.
	followers map[int]bool

	state              State
	solutionSpaceEnded bool
	terminated         bool
}

// New builds a Worker for the given rank. queueCapacity should be at
// least config.DefaultSolutionSpaces.
func New(rank, numWorkers int, g *board.Grid, idx *board.UnknownIndex, fabric *transport.Fabric, queueCapacity int, log zerolog.Logger) *Worker {
	return &Worker{
		Rank:          rank,
		NumWorkers:    numWorkers,
		grid:          g,
		idx:           idx,
		fabric:        fabric,
		log:           log.With().Int("rank", rank).Logger(),
		queue:         bcb.NewQueue(queueCapacity),
		stride:        backtrack.SoloStride(),
		masterProcess: -1,
		followers:     make(map[int]bool),
		state:         StateLocalWork,
	}
}

// SeedInitialSubspaces builds and enumerates this worker's share of
// the numSpaces initial solution subspaces, assigned by index modulo
// worker count. It returns a non-nil
// Outcome the moment a leaf also satisfies the full validator;
// non-solution leaves are queued for later NextLeaf calls.
func (w *Worker) SeedInitialSubspaces(converged *board.SolutionGrid, numSpaces int) *Outcome {
	for spaceID := w.Rank; spaceID < numSpaces; spaceID += w.NumWorkers {
		block := backtrack.InitSubspace(w.grid, converged, w.idx, spaceID, numSpaces)
		if backtrack.BuildLeaf(w.grid, block, w.idx, 0, 0, w.stride) {
			if result := validate.Validate(w.grid, block.Solution); result.OK {
				return w.announceSolution(block.Solution)
			}
			_ = w.queue.Enqueue(block)
		} else {
			w.log.Debug().Int("space_id", spaceID).Msg("failed to find initial leaf")
		}
	}
	return nil
}

// Run drives the worker's main loop: report initial status, then
// alternate between servicing Fabric messages and advancing the
// queued subspace via NextLeaf, until a solution is found anywhere in
// the cluster or this worker is told to stop.
func (w *Worker) Run(ctx context.Context) *Outcome {
	w.reportInitialStatus()

	for {
		if w.terminated {
			w.state = StateTerminated
			return nil
		}

		if w.queue.IsEmpty() {
			select {
			case <-ctx.Done():
				return nil
			case msg := <-w.fabric.RecvFromManager(w.Rank):
				if outcome := w.handleManagerMessage(msg); outcome != nil {
					return outcome
				}
			case env := <-w.fabric.RecvWork(w.Rank):
				w.handleReceiveWork(env)
			case env := <-w.fabric.RecvRefresh(w.Rank):
				w.handleRefresh(env)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case msg := <-w.fabric.RecvFromManager(w.Rank):
			if outcome := w.handleManagerMessage(msg); outcome != nil {
				return outcome
			}
		case env := <-w.fabric.RecvWork(w.Rank):
			w.handleReceiveWork(env)
		case env := <-w.fabric.RecvRefresh(w.Rank):
			w.handleRefresh(env)
		default:
			if outcome := w.stepLocalWork(); outcome != nil {
				return outcome
			}
		}
	}
}

// stepLocalWork dequeues the front subspace, advances it one leaf via
// NextLeaf, and either announces a solution, re-queues it for the
// next leaf, or drops it (exhausted) and reports status. Grounded on
// main.c's backtracking loop body.
func (w *Worker) stepLocalWork() *Outcome {
	queueSizeBefore := w.queue.Size()
	block, err := w.queue.Dequeue()
	if err != nil {
		return nil
	}

	if backtrack.NextLeaf(w.grid, block, w.idx, w.stride) {
		if result := validate.Validate(w.grid, block.Solution); result.OK {
			return w.announceSolution(block.Solution)
		}
		_ = w.queue.Enqueue(block)
		return nil
	}

	switch {
	case queueSizeBefore > 1:
		w.sendStatusUpdate(queueSizeBefore - 1)
	case queueSizeBefore == 1:
		w.askForWork()
	}
	return nil
}

func (w *Worker) announceSolution(solution *board.SolutionGrid) *Outcome {
	w.terminated = true
	w.fabric.SendToManager(w.Rank, transport.Message{Kind: transport.Terminate, Data1: w.Rank, Data2: -1})
	w.log.Info().Msg("found solution")
	return &Outcome{Found: true, Solution: solution.Clone(), FoundBy: w.Rank}
}

func (w *Worker) reportInitialStatus() {
	queueSize := w.queue.Size()
	switch {
	case queueSize > 0:
		w.sendStatusUpdate(queueSize)
	default:
		w.askForWork()
	}
}

func (w *Worker) sendStatusUpdate(queueSize int) {
	w.fabric.SendToManager(w.Rank, transport.Message{Kind: transport.StatusUpdate, Data1: queueSize, Data2: 1})
}

func (w *Worker) askForWork() {
	w.solutionSpaceEnded = true
	w.state = StateIdle
	w.followers = make(map[int]bool)
	w.fabric.SendToManager(w.Rank, transport.Message{Kind: transport.AskForWork, Data1: -1, Data2: -1})
}

func (w *Worker) handleManagerMessage(msg transport.Message) *Outcome {
	switch msg.Kind {
	case transport.Terminate:
		w.terminated = true
		w.state = StateTerminated
		return &Outcome{Found: false}
	case transport.SendWork:
		w.sendWorkTo(msg.Data1, msg.Data2)
	case transport.ReceiveWork:
		// The actual BCB arrives on the W2W work channel; nothing to
		// do here beyond logging which peer to expect it from.
		w.log.Debug().Int("from", msg.Data1).Msg("expecting work")
	case transport.FinishedSolutionSpace:
		delete(w.followers, msg.Data1)
	}
	return nil
}

// sendWorkTo implements work splitting: donate the back-of-queue BCB
// if queue_size>1, otherwise promote to SharingMaster and fan out
// REFRESH_SOLUTION_SPACE to existing followers. Grounded on
// main.c:worker_send_work.
func (w *Worker) sendWorkTo(destination, expectedQueueSize int) {
	queueSize := w.queue.Size()
	invalid := w.terminated || w.solutionSpaceEnded || queueSize == 0 || expectedQueueSize != queueSize

	var block *bcb.BCB
	solutionsToSkip, totalProcesses := 0, 0

	if !invalid {
		switch {
		case queueSize == 1:
			block, _ = w.queue.Peek()
			solutionsToSkip = w.stride.TotalProcessesInSpace

			w.followers[destination] = true
			totalProcesses = len(w.followers) + 1
			w.stride.SolutionsToSkip = 0
			w.stride.TotalProcessesInSpace = totalProcesses
			w.state = StateSharingMaster
			w.masterProcess = -1

			count := 0
			for follower := range w.followers {
				if follower == destination {
					continue
				}
				count++
				w.fabric.SendRefresh(w.Rank, follower, transport.Message{
					Kind:   transport.RefreshSolutionSpace,
					Data1:  count,
					Data2:  totalProcesses,
					Buffer: block.ToBuffer(),
				})
			}
		case queueSize > 1:
			block, _ = w.queue.DequeueBack()
			solutionsToSkip = 0
			totalProcesses = 1
		}
	}

	msg := transport.Message{Kind: transport.WorkerSendWork, Data1: solutionsToSkip, Data2: totalProcesses, Invalid: invalid}
	if !invalid {
		msg.Buffer = block.ToBuffer()
	}
	w.fabric.SendWork(w.Rank, destination, msg)
}

// handleReceiveWork consumes a BCB handed over by a donor and, if the
// donor marked the subspace as shared (Data2>1), becomes that donor's
// SharingFollower. Grounded on main.c:worker_receive_work.
func (w *Worker) handleReceiveWork(env transport.Envelope) {
	msg := env.Msg
	if msg.Invalid {
		w.askForWork()
		return
	}

	block := bcb.FromBuffer(w.grid.Size, msg.Buffer)
	_ = w.queue.Enqueue(block)

	if msg.Data2 > 1 {
		w.masterProcess = env.From
		w.state = StateSharingFollower
		w.stride.SolutionsToSkip = msg.Data1
		w.stride.TotalProcessesInSpace = msg.Data2
	} else {
		w.solutionSpaceEnded = false
		w.state = StateLocalWork
	}
}

// handleRefresh updates this follower's stride residues when its
// SharingMaster admits a new cooperating worker into the subspace, and
// resyncs the follower's queued BCB to the master's current buffer so
// its leaf sequence stays aligned with the new stride partition
// instead of diverging from whatever position it was at locally.
func (w *Worker) handleRefresh(env transport.Envelope) {
	msg := env.Msg
	w.stride.SolutionsToSkip = msg.Data1
	w.stride.TotalProcessesInSpace = msg.Data2

	if msg.Buffer == nil {
		return
	}
	fresh := bcb.FromBuffer(w.grid.Size, msg.Buffer)
	if block, err := w.queue.Peek(); err == nil {
		block.Solution = fresh.Solution
		block.Pinned = fresh.Pinned
	}
}

// State reports the worker's current state, exported for tests and
// manager-side status tracking.
func (w *Worker) State() State {
	return w.state
}

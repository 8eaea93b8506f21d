package worker

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hailam/hitori-solver/internal/backtrack"
	"github.com/hailam/hitori-solver/internal/bcb"
	"github.com/hailam/hitori-solver/internal/board"
	"github.com/hailam/hitori-solver/internal/pruning"
	"github.com/hailam/hitori-solver/internal/transport"
)

func newTestWorker(t *testing.T, rank, numWorkers int, fabric *transport.Fabric) *Worker {
	t.Helper()
	g := board.NewGrid(2, []int{1, 2, 2, 1})
	idx := board.ComputeUnknownIndex(board.NewSolutionGrid(2))
	return New(rank, numWorkers, g, idx, fabric, 4, zerolog.New(io.Discard))
}

func seedQueue(w *Worker, n int) {
	for i := 0; i < n; i++ {
		_ = w.queue.Enqueue(bcb.New(board.NewSolutionGrid(2)))
	}
}

// TestSendWorkToDonatesBackOfQueueWhenMultipleBlocks checks the first
// work-splitting branch: a donor with more than one queued subspace
// gives up the rear block and keeps solo ownership of the rest.
func TestSendWorkToDonatesBackOfQueueWhenMultipleBlocks(t *testing.T) {
	fabric := transport.NewFabric(2)
	w := newTestWorker(t, 0, 2, fabric)
	seedQueue(w, 3)

	w.sendWorkTo(1, 3)

	env := <-fabric.RecvWork(1)
	require.False(t, env.Msg.Invalid)
	require.Equal(t, 1, env.Msg.Data2)
	require.Equal(t, 2, w.queue.Size())
	require.Equal(t, StateLocalWork, w.state)
}

// TestSendWorkToPromotesToSharingMasterWhenSoleBlockRemains checks the
// second work-splitting branch: a donor with exactly one subspace
// left shares it instead of giving it away outright.
func TestSendWorkToPromotesToSharingMasterWhenSoleBlockRemains(t *testing.T) {
	fabric := transport.NewFabric(2)
	w := newTestWorker(t, 0, 2, fabric)
	seedQueue(w, 1)
	w.stride = &backtrack.Stride{SolutionsToSkip: 0, TotalProcessesInSpace: 1}

	w.sendWorkTo(1, 1)

	env := <-fabric.RecvWork(1)
	require.False(t, env.Msg.Invalid)
	require.Equal(t, 2, env.Msg.Data2)
	require.Equal(t, StateSharingMaster, w.state)
	require.Equal(t, 1, w.queue.Size(), "the shared block itself is not removed from the donor's queue")
	require.True(t, w.followers[1])
}

// TestSendWorkToRefreshesExistingFollowersOnNewAdmission checks the
// REFRESH_SOLUTION_SPACE fan-out: admitting a second follower must
// push updated stride residues, plus the master's current BCB buffer,
// to the first so the follower's leaf sequence stays aligned with the
// master's instead of drifting from wherever it was locally.
func TestSendWorkToRefreshesExistingFollowersOnNewAdmission(t *testing.T) {
	fabric := transport.NewFabric(3)
	w := newTestWorker(t, 0, 3, fabric)
	seedQueue(w, 1)
	w.followers[1] = true
	w.state = StateSharingMaster
	w.stride = &backtrack.Stride{SolutionsToSkip: 0, TotalProcessesInSpace: 2}

	w.sendWorkTo(2, 1)

	refresh := <-fabric.RecvRefresh(1)
	require.Equal(t, 3, refresh.Msg.Data2)
	require.NotNil(t, refresh.Msg.Buffer)

	env := <-fabric.RecvWork(2)
	require.Equal(t, 3, env.Msg.Data2)
}

// TestSendWorkToMarksInvalidOnQueueSizeRace pins the race guard: if
// the donor's queue no longer matches what the manager assumed when it
// issued SEND_WORK, the transfer is rejected rather than shipping a
// stale or absent block.
func TestSendWorkToMarksInvalidOnQueueSizeRace(t *testing.T) {
	fabric := transport.NewFabric(2)
	w := newTestWorker(t, 0, 2, fabric)
	seedQueue(w, 1)

	w.sendWorkTo(1, 5)

	env := <-fabric.RecvWork(1)
	require.True(t, env.Msg.Invalid)
	require.Nil(t, env.Msg.Buffer)
}

// TestHandleReceiveWorkBecomesFollowerWhenSubspaceShared pins
// main.c:worker_receive_work's follower path.
func TestHandleReceiveWorkBecomesFollowerWhenSubspaceShared(t *testing.T) {
	fabric := transport.NewFabric(2)
	w := newTestWorker(t, 1, 2, fabric)

	block := bcb.New(board.NewSolutionGrid(2))
	w.handleReceiveWork(transport.Envelope{
		From: 0,
		Msg:  transport.Message{Data1: 3, Data2: 2, Buffer: block.ToBuffer()},
	})

	require.Equal(t, StateSharingFollower, w.state)
	require.Equal(t, 0, w.masterProcess)
	require.Equal(t, 3, w.stride.SolutionsToSkip)
	require.Equal(t, 2, w.stride.TotalProcessesInSpace)
	require.Equal(t, 1, w.queue.Size())
}

// TestHandleReceiveWorkStaysSoloWhenSubspaceNotShared pins the solo
// (non-shared) handoff path, where the recipient just continues
// LocalWork instead of joining as a follower.
func TestHandleReceiveWorkStaysSoloWhenSubspaceNotShared(t *testing.T) {
	fabric := transport.NewFabric(2)
	w := newTestWorker(t, 1, 2, fabric)
	w.solutionSpaceEnded = true

	block := bcb.New(board.NewSolutionGrid(2))
	w.handleReceiveWork(transport.Envelope{
		From: 0,
		Msg:  transport.Message{Data1: 0, Data2: 1, Buffer: block.ToBuffer()},
	})

	require.Equal(t, StateLocalWork, w.state)
	require.False(t, w.solutionSpaceEnded)
}

// TestHandleReceiveWorkInvalidAsksForWork pins the race path: a donor
// that reported the transfer Invalid sends the requester straight
// back to the manager instead of enqueueing garbage.
func TestHandleReceiveWorkInvalidAsksForWork(t *testing.T) {
	fabric := transport.NewFabric(2)
	w := newTestWorker(t, 1, 2, fabric)

	w.handleReceiveWork(transport.Envelope{From: 0, Msg: transport.Message{Invalid: true}})

	require.Equal(t, 0, w.queue.Size())
	ask := <-fabric.RecvFromWorkers()
	require.Equal(t, transport.AskForWork, ask.Msg.Kind)
}

// TestHandleRefreshUpdatesStrideResidues checks a follower reacting to
// its master's REFRESH_SOLUTION_SPACE broadcast across two admissions:
// the stride grows from 3 to 4 while the residue moves from 2 to 3.
func TestHandleRefreshUpdatesStrideResidues(t *testing.T) {
	fabric := transport.NewFabric(2)
	w := newTestWorker(t, 1, 2, fabric)
	w.stride = &backtrack.Stride{}

	w.handleRefresh(transport.Envelope{Msg: transport.Message{Data1: 2, Data2: 3}})
	require.Equal(t, 2, w.stride.SolutionsToSkip)
	require.Equal(t, 3, w.stride.TotalProcessesInSpace)

	w.handleRefresh(transport.Envelope{Msg: transport.Message{Data1: 3, Data2: 4}})
	require.Equal(t, 3, w.stride.SolutionsToSkip)
	require.Equal(t, 4, w.stride.TotalProcessesInSpace)
}

// TestHandleRefreshResyncsFollowerBCBToMasterBuffer checks that a
// REFRESH_SOLUTION_SPACE carrying a buffer overwrites the follower's
// queued BCB with the master's current solution/pinned mask, instead
// of leaving the follower enumerating its own stale leaf position.
func TestHandleRefreshResyncsFollowerBCBToMasterBuffer(t *testing.T) {
	fabric := transport.NewFabric(2)
	w := newTestWorker(t, 1, 2, fabric)
	stale := bcb.New(board.NewSolutionGrid(2))
	stale.Pin(0, 0, board.Black)
	_ = w.queue.Enqueue(stale)

	fresh := bcb.New(board.NewSolutionGrid(2))
	fresh.Pin(0, 0, board.White)
	fresh.Pin(1, 1, board.Black)

	w.handleRefresh(transport.Envelope{Msg: transport.Message{Data1: 1, Data2: 3, Buffer: fresh.ToBuffer()}})

	block, err := w.queue.Peek()
	require.NoError(t, err)
	require.True(t, fresh.Solution.Equal(block.Solution))
	require.Equal(t, fresh.Pinned, block.Pinned)
}

// TestSeedInitialSubspacesAnnouncesSolutionViaFabric checks that a
// solution found during initial seeding goes through announceSolution
// rather than bypassing the protocol: the manager must see a
// transport.Terminate on the W2M channel the moment seeding succeeds,
// not only once the worker later calls Run.
func TestSeedInitialSubspacesAnnouncesSolutionViaFabric(t *testing.T) {
	fabric := transport.NewFabric(1)
	g := board.NewGrid(2, []int{1, 2, 2, 1})
	converged := pruning.Run(g)
	idx := board.ComputeUnknownIndex(converged)
	w := New(0, 1, g, idx, fabric, 1, zerolog.New(io.Discard))

	outcome := w.SeedInitialSubspaces(converged, 1)
	require.NotNil(t, outcome)
	require.True(t, outcome.Found)
	require.True(t, w.terminated)

	env := <-fabric.RecvFromWorkers()
	require.Equal(t, transport.Terminate, env.Msg.Kind)
	require.Equal(t, 0, env.Msg.Data1)
}

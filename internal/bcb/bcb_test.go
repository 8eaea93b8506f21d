package bcb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hailam/hitori-solver/internal/bcb"
	"github.com/hailam/hitori-solver/internal/board"
)

// TestBufferRoundTrip checks that serializing a BCB to a flat buffer
// and back reproduces the original solution and pinned mask exactly.
func TestBufferRoundTrip(t *testing.T) {
	solution := board.NewSolutionGrid(3)
	solution.Set(0, 0, board.White)
	solution.Set(1, 1, board.Black)

	block := bcb.New(solution)
	block.Pin(0, 0, board.White)
	block.Pin(2, 2, board.Black)

	buf := block.ToBuffer()
	round := bcb.FromBuffer(3, buf)

	require.True(t, block.Solution.Equal(round.Solution))
	require.Equal(t, block.Pinned, round.Pinned)
}

func TestPinSetsValueAndFlag(t *testing.T) {
	solution := board.NewSolutionGrid(2)
	block := bcb.New(solution)
	require.False(t, block.IsPinned(0, 1))

	block.Pin(0, 1, board.Black)
	require.True(t, block.IsPinned(0, 1))
	require.Equal(t, board.Black, block.Solution.At(0, 1))
}

func TestCloneIsIndependent(t *testing.T) {
	solution := board.NewSolutionGrid(2)
	block := bcb.New(solution)
	block.Pin(0, 0, board.White)

	clone := block.Clone()
	clone.Pin(1, 1, board.Black)

	require.False(t, block.IsPinned(1, 1))
	require.True(t, clone.IsPinned(1, 1))
}

func TestQueueFIFOOrder(t *testing.T) {
	q := bcb.NewQueue(4)
	require.True(t, q.IsEmpty())

	a := bcb.New(board.NewSolutionGrid(2))
	b := bcb.New(board.NewSolutionGrid(2))
	require.NoError(t, q.Enqueue(a))
	require.NoError(t, q.Enqueue(b))
	require.Equal(t, 2, q.Size())

	front, err := q.Dequeue()
	require.NoError(t, err)
	require.Same(t, a, front)
	require.Equal(t, 1, q.Size())
}

func TestQueueDequeueBackDonatesRear(t *testing.T) {
	q := bcb.NewQueue(4)
	a := bcb.New(board.NewSolutionGrid(2))
	b := bcb.New(board.NewSolutionGrid(2))
	c := bcb.New(board.NewSolutionGrid(2))
	require.NoError(t, q.Enqueue(a))
	require.NoError(t, q.Enqueue(b))
	require.NoError(t, q.Enqueue(c))

	back, err := q.DequeueBack()
	require.NoError(t, err)
	require.Same(t, c, back)
	require.Equal(t, 2, q.Size())

	front, err := q.Dequeue()
	require.NoError(t, err)
	require.Same(t, a, front)
}

func TestQueueOverflowAndUnderflow(t *testing.T) {
	q := bcb.NewQueue(2)
	require.NoError(t, q.Enqueue(bcb.New(board.NewSolutionGrid(2))))
	require.NoError(t, q.Enqueue(bcb.New(board.NewSolutionGrid(2))))
	require.ErrorIs(t, q.Enqueue(bcb.New(board.NewSolutionGrid(2))), bcb.ErrQueueFull)

	_, err := bcb.NewQueue(1).Dequeue()
	require.ErrorIs(t, err, bcb.ErrQueueEmpty)
}

func TestQueueWrapsAroundRingBuffer(t *testing.T) {
	q := bcb.NewQueue(2)
	a := bcb.New(board.NewSolutionGrid(2))
	b := bcb.New(board.NewSolutionGrid(2))
	require.NoError(t, q.Enqueue(a))
	require.NoError(t, q.Enqueue(b))
	_, _ = q.Dequeue()

	c := bcb.New(board.NewSolutionGrid(2))
	require.NoError(t, q.Enqueue(c))
	require.Equal(t, 2, q.Size())

	front, _ := q.Dequeue()
	require.Same(t, b, front)
}

package bcb

import "errors"

// ErrQueueFull is returned by Enqueue when the ring buffer has reached
// its capacity.
var ErrQueueFull = errors.New("bcb: queue overflow")

// ErrQueueEmpty is returned by Peek/Dequeue/DequeueBack on an empty
// queue.
var ErrQueueEmpty = errors.New("bcb: queue underflow")

// Queue is a fixed-capacity ring buffer of BCBs, one per worker. Each
// worker enqueues subspaces it has been handed and dequeues from the
// front to pick its next subspace to enumerate; DequeueBack removes
// from the rear, which is how work splitting donates the "back of
// queue" BCB to a requesting peer. Grounded on
// original_source/MPI/src/libs/queue.h and its Queue struct in
// common.h.
type Queue struct {
	items      []*BCB
	front, rear int
}

// NewQueue builds an empty ring buffer with the given capacity
// (typically the number of initial solution subspaces, or
// config.DefaultSolutionSpaces).
func NewQueue(capacity int) *Queue {
	return &Queue{
		items: make([]*BCB, capacity),
		front: -1,
		rear:  -1,
	}
}

// IsEmpty reports whether the queue holds no BCBs.
func (q *Queue) IsEmpty() bool {
	return q.front == -1
}

// IsFull reports whether the queue has reached capacity.
func (q *Queue) IsFull() bool {
	return (q.rear+1)%len(q.items) == q.front
}

// Size returns the number of BCBs currently queued.
func (q *Queue) Size() int {
	if q.front == -1 {
		return 0
	}
	if q.front <= q.rear {
		return q.rear - q.front + 1
	}
	return len(q.items) - q.front + q.rear + 1
}

// Enqueue adds block to the rear of the queue.
func (q *Queue) Enqueue(block *BCB) error {
	if q.IsFull() {
		return ErrQueueFull
	}
	if q.front == -1 {
		q.front = 0
	}
	q.rear = (q.rear + 1) % len(q.items)
	q.items[q.rear] = block
	return nil
}

// Peek returns the front BCB without removing it.
func (q *Queue) Peek() (*BCB, error) {
	if q.IsEmpty() {
		return nil, ErrQueueEmpty
	}
	return q.items[q.front], nil
}

// Dequeue removes and returns the front BCB: the next subspace a
// worker should enumerate.
func (q *Queue) Dequeue() (*BCB, error) {
	if q.IsEmpty() {
		return nil, ErrQueueEmpty
	}
	data := q.items[q.front]
	q.items[q.front] = nil
	if q.front == q.rear {
		q.front, q.rear = -1, -1
	} else {
		q.front = (q.front + 1) % len(q.items)
	}
	return data, nil
}

// DequeueBack removes and returns the rear BCB: the subspace donated
// to another worker when its queue holds more than one block.
func (q *Queue) DequeueBack() (*BCB, error) {
	if q.IsEmpty() {
		return nil, ErrQueueEmpty
	}
	data := q.items[q.rear]
	q.items[q.rear] = nil
	if q.front == q.rear {
		q.front, q.rear = -1, -1
	} else {
		q.rear = (q.rear - 1 + len(q.items)) % len(q.items)
	}
	return data, nil
}

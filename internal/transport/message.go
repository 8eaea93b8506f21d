// Package transport realizes the four logical message channels of the
// manager/worker protocol as Go channels: no peer ever reads another
// peer's memory, only messages it has been sent. Grounded on
// original_source/MPI/include/common.h's MessageType enum and
// src/main.c's send_message/receive_message.
package transport

// Kind enumerates the message types exchanged between workers and the
// manager. Grounded on common.h's MessageType.
type Kind int

const (
	// Terminate is sent worker->manager to announce a found solution,
	// and manager->worker (broadcast) to stop the search.
	Terminate Kind = iota
	// StatusUpdate reports a worker's current queue size and its
	// processes-sharing-solution-space count to the manager.
	StatusUpdate
	// AskForWork is sent by an idle worker to the manager.
	AskForWork
	// SendWork instructs a donor worker to ship a BCB to another
	// worker (Data1: receiver rank, Data2: donor's expected queue
	// size, used to detect races against a concurrent STATUS_UPDATE).
	SendWork
	// ReceiveWork tells the original requester which worker will send
	// it a BCB (Data1: sender rank).
	ReceiveWork
	// FinishedSolutionSpace notifies an ex-master that one of its
	// followers has moved on to a different subspace.
	FinishedSolutionSpace
	// WorkerSendWork is the worker-to-worker data message carrying a
	// BCB and its stride parameters (Data1: solutions to skip, Data2:
	// total processes sharing the subspace).
	WorkerSendWork
	// RefreshSolutionSpace is broadcast by a newly promoted
	// SharingMaster to every follower already in its subspace, with
	// updated stride residues (Data1) and process count (Data2).
	RefreshSolutionSpace
)

// Message is the fixed-shape envelope every channel carries, matching
// common.h's Message struct: a Kind plus two integer payload fields
// and an Invalid flag for races where a donor's state changed between
// the manager's decision and the worker acting on it.
type Message struct {
	Kind    Kind
	Data1   int
	Data2   int
	Invalid bool
	// Buffer carries a BCB wire encoding (bcb.BCB.ToBuffer) for
	// WorkerSendWork messages; nil for every other Kind.
	Buffer []int
}

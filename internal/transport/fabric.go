package transport

import "github.com/hailam/hitori-solver/internal/config"

// Envelope pairs a Message with the rank that sent it, needed on the
// W2M channel since every worker shares it with the manager.
type Envelope struct {
	From int
	Msg  Message
}

// Fabric wires together the four logical channels of the
// worker/manager protocol as Go channels, one set of endpoints per
// simulated peer. No peer ever touches another's memory: every
// cross-peer interaction is a send on one of these channels.
type Fabric struct {
	w2m        chan Envelope
	m2w        []chan Message
	w2wWork    []chan Envelope
	w2wRefresh []chan Envelope
}

// NewFabric allocates a Fabric for numWorkers peers (ranks 0..n-1;
// rank config.ManagerRank is the manager and also owns a worker
// inbox, since the manager rank may also act as a worker).
func NewFabric(numWorkers int) *Fabric {
	f := &Fabric{
		w2m:        make(chan Envelope, config.QueueChanDepth),
		m2w:        make([]chan Message, numWorkers),
		w2wWork:    make([]chan Envelope, numWorkers),
		w2wRefresh: make([]chan Envelope, numWorkers),
	}
	for i := 0; i < numWorkers; i++ {
		f.m2w[i] = make(chan Message, config.QueueChanDepth)
		f.w2wWork[i] = make(chan Envelope, config.QueueChanDepth)
		f.w2wRefresh[i] = make(chan Envelope, config.QueueChanDepth)
	}
	return f
}

// SendToManager is the W2M channel: a worker reporting status,
// asking for work, or announcing termination.
func (f *Fabric) SendToManager(from int, msg Message) {
	f.w2m <- Envelope{From: from, Msg: msg}
}

// RecvFromWorkers is the manager's receive end of W2M.
func (f *Fabric) RecvFromWorkers() <-chan Envelope {
	return f.w2m
}

// SendToWorker is the M2W channel: the manager dispatching TERMINATE,
// SEND_WORK, RECEIVE_WORK or FINISHED_SOLUTION_SPACE to rank `to`.
func (f *Fabric) SendToWorker(to int, msg Message) {
	f.m2w[to] <- msg
}

// RecvFromManager is a worker's receive end of M2W.
func (f *Fabric) RecvFromManager(self int) <-chan Message {
	return f.m2w[self]
}

// SendWork is the W2W work-transfer channel: a donor handing a BCB
// (carried in Message.Buffer) to `to`.
func (f *Fabric) SendWork(from, to int, msg Message) {
	f.w2wWork[to] <- Envelope{From: from, Msg: msg}
}

// RecvWork is a worker's receive end of the W2W work-transfer
// channel.
func (f *Fabric) RecvWork(self int) <-chan Envelope {
	return f.w2wWork[self]
}

// SendRefresh is the dedicated W2W refresh channel: a newly promoted
// SharingMaster broadcasting updated stride residues to a follower.
func (f *Fabric) SendRefresh(from, to int, msg Message) {
	f.w2wRefresh[to] <- Envelope{From: from, Msg: msg}
}

// RecvRefresh is a worker's receive end of the refresh channel.
func (f *Fabric) RecvRefresh(self int) <-chan Envelope {
	return f.w2wRefresh[self]
}

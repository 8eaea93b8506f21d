// Package manager implements the single coordinating peer of
// the solver's coordination protocol: it tracks every worker's
// reported queue size, picks a donor when a worker goes idle, and
// broadcasts termination once any worker reports a solution. Grounded
// on
// original_source/MPI/src/main.c's manager_consume_message /
// manager_check_messages.
package manager

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/hailam/hitori-solver/internal/config"
	"github.com/hailam/hitori-solver/internal/transport"
)

// status mirrors original_source/MPI's WorkerStatus: the manager's
// optimistic view of one worker's queue, updated either by that
// worker's own STATUS_UPDATE messages or speculatively by the manager
// itself the instant it dispatches a work assignment.
type status struct {
	queueSize        int
	processesSharing int
	// masterProcess is -1 unless this worker is a SharingFollower, in
	// which case it names the rank it follows.
	masterProcess int
}

// Manager is the single peer that plays the coordinator role. It runs
// in its own goroutine and only touches shared state through the
// Fabric, exactly like every worker.
type Manager struct {
	numWorkers int
	fabric     *transport.Fabric
	statuses   []status
	terminated bool
	log        zerolog.Logger
}

// New builds a Manager for a cluster of numWorkers peers.
func New(numWorkers int, fabric *transport.Fabric, log zerolog.Logger) *Manager {
	statuses := make([]status, numWorkers)
	for i := range statuses {
		statuses[i].masterProcess = -1
	}
	return &Manager{
		numWorkers: numWorkers,
		fabric:     fabric,
		statuses:   statuses,
		log:        log.With().Str("role", "manager").Logger(),
	}
}

// Run services the manager's W2M inbox until it observes TERMINATE or
// ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-m.fabric.RecvFromWorkers():
			m.consume(env)
			if m.terminated {
				return
			}
		}
	}
}

func (m *Manager) consume(env transport.Envelope) {
	source := env.From
	msg := env.Msg

	switch msg.Kind {
	case transport.Terminate:
		for i := 0; i < m.numWorkers; i++ {
			if i == config.ManagerRank || i == msg.Data1 {
				continue
			}
			m.fabric.SendToWorker(i, transport.Message{Kind: transport.Terminate, Data1: msg.Data1, Data2: -1})
		}
		m.terminated = true
		m.log.Info().Int("found_by", msg.Data1).Msg("broadcasting termination")

	case transport.StatusUpdate:
		m.statuses[source].queueSize = msg.Data1
		m.statuses[source].processesSharing = msg.Data2

	case transport.AskForWork:
		m.handleAskForWork(source)
	}
}

func (m *Manager) handleAskForWork(source int) {
	if m.terminated {
		m.fabric.SendToWorker(source, transport.Message{Kind: transport.Terminate, Data1: config.ManagerRank, Data2: -1})
		return
	}

	m.statuses[source].queueSize = 0
	m.statuses[source].processesSharing = 0

	target := m.selectDonor(source)
	if target == -1 {
		m.fabric.SendToWorker(source, transport.Message{Kind: transport.Terminate, Data1: config.ManagerRank, Data2: -1})
		return
	}

	minQueueSize := m.statuses[target].queueSize
	m.fabric.SendToWorker(target, transport.Message{Kind: transport.SendWork, Data1: source, Data2: minQueueSize})
	m.fabric.SendToWorker(source, transport.Message{Kind: transport.ReceiveWork, Data1: target, Data2: -1})

	exMaster := m.statuses[source].masterProcess
	if exMaster != -1 && m.statuses[exMaster].masterProcess == -1 {
		m.fabric.SendToWorker(exMaster, transport.Message{Kind: transport.FinishedSolutionSpace, Data1: source, Data2: -1})
	}

	if minQueueSize == 1 {
		// Donor is now sharing its single remaining subspace: the
		// asker becomes its follower.
		m.statuses[target].queueSize = 1
		m.statuses[target].processesSharing++
		m.statuses[source].queueSize = m.numWorkers + 1
		m.statuses[source].processesSharing = m.numWorkers + 1
		m.statuses[source].masterProcess = target
	} else {
		m.statuses[target].queueSize--
		m.statuses[source].queueSize = 1
		m.statuses[source].processesSharing = 1
		m.statuses[source].masterProcess = -1
	}
}

// selectDonor picks the worker with the smallest positive queue_size,
// tie-broken by the smallest processes_sharing_solution_space. It
// returns -1 if no worker has spare work.
func (m *Manager) selectDonor(source int) int {
	target := -1
	minQueueSize := math.MaxInt
	minProcessesSharing := math.MaxInt

	for i := 0; i < m.numWorkers; i++ {
		if i == source || m.statuses[i].masterProcess != -1 {
			continue
		}
		switch {
		case m.statuses[i].queueSize > 0 && m.statuses[i].queueSize < minQueueSize:
			minQueueSize = m.statuses[i].queueSize
			minProcessesSharing = m.statuses[i].processesSharing
			target = i
		case m.statuses[i].queueSize == minQueueSize && m.statuses[i].processesSharing < minProcessesSharing:
			minProcessesSharing = m.statuses[i].processesSharing
			target = i
		}
	}
	return target
}

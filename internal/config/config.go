// Package config holds the compile-time constants of the distributed
// solver, mirroring the original MPI implementation's common.h.
package config

// Channel tags, one per logical channel in the worker/manager protocol.
const (
	TagW2M      = 0 // worker -> manager
	TagM2W      = 1 // manager -> worker
	TagW2WCtrl  = 2 // worker <-> worker control messages
	TagW2WBulk  = 3 // worker <-> worker BCB buffer payload
	TagRefresh  = 4 // worker <-> worker refresh-channel control messages
)

// ManagerRank is the peer identity that always plays the manager role.
const ManagerRank = 0

const (
	// DefaultSolutionSpaces is the number of initial subspaces seeded
	// before any worker consumes a leaf. Must be a power of two.
	DefaultSolutionSpaces = 4

	// MaxMsgSize mirrors MAX_BUFFER_SIZE in the original. No package
	// reads it; channel buffering is set by QueueChanDepth.
	MaxMsgSize = 2048

	// DefaultPruningWorkers mirrors the original's pruning worker cap.
	// No package reads it; internal/pruning always fans each line rule
	// out over two goroutines (rows and columns).
	DefaultPruningWorkers = 4

	// QueueChanDepth is the buffered channel depth used for every
	// inter-peer channel; generous enough that sends never block the
	// simulated non-blocking transport in practice (see
	// internal/transport).
	QueueChanDepth = 64
)

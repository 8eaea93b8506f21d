// Package solvecache memoizes completed runs in a BadgerDB store
// keyed by the input grid, so re-solving an identical puzzle returns
// instantly instead of re-running the whole cluster. Adapted from
// _examples/hailam-chessplay's internal/storage, which wraps BadgerDB
// the same way for user preferences and game stats.
package solvecache

import (
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/hailam/hitori-solver/internal/board"
)

// Entry is the cached outcome of one solve, keyed by the input grid's
// Key(). Cells is nil when Solved is false.
type Entry struct {
	RunID   string          `json:"run_id"`
	Solved  bool            `json:"solved"`
	FoundBy int             `json:"found_by"`
	Size    int             `json:"size"`
	Cells   []board.CellState `json:"cells,omitempty"`
}

// Store wraps a BadgerDB instance dedicated to solve results.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the BadgerDB database at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handles.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get looks up a previously cached solve for g, reporting found=false
// if none exists.
func (s *Store) Get(g *board.Grid) (entry Entry, found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(g.Key()))
		if errors.Is(getErr, badger.ErrKeyNotFound) {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	return entry, found, err
}

// Put stores the outcome of a completed solve for g.
func (s *Store) Put(g *board.Grid, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(g.Key()), data)
	})
}

// EntryFromSolution builds a cache Entry from a solved run.
func EntryFromSolution(runID string, foundBy int, solution *board.SolutionGrid) Entry {
	return Entry{RunID: runID, Solved: true, FoundBy: foundBy, Size: solution.Size, Cells: solution.Cells}
}

// EntryUnsolved builds a cache Entry recording that a run exhausted
// its search space without a solution.
func EntryUnsolved(runID string) Entry {
	return Entry{RunID: runID, Solved: false}
}

// Solution reconstructs the SolutionGrid carried in a cached Entry.
func (e Entry) Solution() *board.SolutionGrid {
	if !e.Solved {
		return nil
	}
	s := board.NewSolutionGrid(e.Size)
	copy(s.Cells, e.Cells)
	return s
}

// Command hitori-solver reads a puzzle grid from a file, runs the
// pruning/backtracking cluster described in internal/cluster, and
// prints the solved board. Grounded on
// _examples/hailam-chessplay's cmd/chessplay-uci entrypoint shape:
// flag parsing, a zerolog logger, then handing off to the library.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/hitori-solver/internal/cluster"
	"github.com/hailam/hitori-solver/internal/config"
	"github.com/hailam/hitori-solver/internal/ioformat"
	"github.com/hailam/hitori-solver/internal/solvecache"
	"github.com/hailam/hitori-solver/internal/storage"
)

func main() {
	inputPath := flag.String("input", "", "path to a whitespace-separated integer grid file (required)")
	workers := flag.Int("workers", 4, "number of cooperating worker peers")
	spaces := flag.Int("spaces", config.DefaultSolutionSpaces, "number of initial solution subspaces (power of two)")
	noCache := flag.Bool("no-cache", false, "skip the solve-result cache")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	if *inputPath == "" {
		log.Fatal().Msg("-input is required")
	}

	if err := run(log, *inputPath, *workers, *spaces, *noCache); err != nil {
		log.Fatal().Err(err).Msg("solve failed")
	}
}

func run(log zerolog.Logger, inputPath string, workers, spaces int, noCache bool) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	g, err := ioformat.ParseGrid(f)
	if err != nil {
		return fmt.Errorf("parsing grid: %w", err)
	}

	var cache *solvecache.Store
	if !noCache {
		dbDir, dirErr := storage.GetDatabaseDir()
		if dirErr != nil {
			log.Warn().Err(dirErr).Msg("cache disabled: could not resolve database directory")
		} else if cache, err = solvecache.Open(dbDir); err != nil {
			log.Warn().Err(err).Msg("cache disabled: could not open store")
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	if cache != nil {
		if entry, found, getErr := cache.Get(g); getErr == nil && found {
			log.Info().Str("run_id", entry.RunID).Msg("cache hit")
			return ioformat.WriteSolution(os.Stdout, "Cached Solution", entry.Solution())
		}
	}

	result := cluster.Run(context.Background(), g, cluster.Options{
		NumWorkers:    workers,
		NumSpaces:     spaces,
		QueueCapacity: spaces,
		Logger:        log,
	})

	if cache != nil {
		var entry solvecache.Entry
		if result.Solved {
			entry = solvecache.EntryFromSolution(result.RunID, result.FoundBy, result.Solution)
		} else {
			entry = solvecache.EntryUnsolved(result.RunID)
		}
		if putErr := cache.Put(g, entry); putErr != nil {
			log.Warn().Err(putErr).Msg("failed to cache result")
		}
	}

	if !result.Solved {
		fmt.Println("no solution found")
		return nil
	}
	return ioformat.WriteSolution(os.Stdout, "Solution", result.Solution)
}

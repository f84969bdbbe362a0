package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyOptions     = "options"
	keyStats       = "stats"
	keyPerftPrefix = "perft/"
)

// Options stores the engine settings chosen through setoption.
type Options struct {
	HashMB    int       `json:"hash_mb"`
	Depth     int       `json:"depth"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultOptions returns the settings used when nothing has been saved.
func DefaultOptions(hashMB, depth int) *Options {
	return &Options{
		HashMB: hashMB,
		Depth:  depth,
	}
}

// SearchStats accumulates totals over every search the engine has run.
type SearchStats struct {
	Searches     int           `json:"searches"`
	Nodes        uint64        `json:"nodes"`
	TotalTime    time.Duration `json:"total_time"`
	DeepestDepth int           `json:"deepest_depth"`
}

// NodesPerSecond returns the average search speed.
func (s *SearchStats) NodesPerSecond() float64 {
	if s.TotalTime <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.TotalTime.Seconds()
}

// PerftRecord is a cached perft node count.
type PerftRecord struct {
	FEN     string        `json:"fen"`
	Depth   int           `json:"depth"`
	Nodes   uint64        `json:"nodes"`
	Elapsed time.Duration `json:"elapsed"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir. An empty dir selects the
// platform database directory.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		dir, err = GetDatabaseDir()
		if err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v and reports whether it was present.
func (s *Storage) get(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}

// SaveOptions saves the engine options.
func (s *Storage) SaveOptions(opts *Options) error {
	opts.UpdatedAt = time.Now()
	return s.put(keyOptions, opts)
}

// LoadOptions loads the saved options, or returns defaults if none were saved.
func (s *Storage) LoadOptions(defaults *Options) (*Options, error) {
	opts := *defaults
	if _, err := s.get(keyOptions, &opts); err != nil {
		return defaults, err
	}
	return &opts, nil
}

// LoadStats loads search statistics, returns empty stats if not found.
func (s *Storage) LoadStats() (*SearchStats, error) {
	stats := &SearchStats{}
	_, err := s.get(keyStats, stats)
	return stats, err
}

// RecordSearch adds one finished search to the statistics.
func (s *Storage) RecordSearch(depth int, nodes uint64, elapsed time.Duration) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Searches++
	stats.Nodes += nodes
	stats.TotalTime += elapsed
	if depth > stats.DeepestDepth {
		stats.DeepestDepth = depth
	}

	return s.put(keyStats, stats)
}

// perftKey identifies a perft result by the position fields that affect move
// generation; the clocks are left out.
func perftKey(fen string, depth int) string {
	fields := strings.Fields(fen)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return fmt.Sprintf("%s%d/%s", keyPerftPrefix, depth, strings.Join(fields, " "))
}

// LoadPerft returns a cached perft count for the position and depth.
func (s *Storage) LoadPerft(fen string, depth int) (*PerftRecord, bool, error) {
	rec := &PerftRecord{}
	found, err := s.get(perftKey(fen, depth), rec)
	if err != nil || !found {
		return nil, false, err
	}
	return rec, true, nil
}

// SavePerft caches a perft count.
func (s *Storage) SavePerft(fen string, depth int, nodes uint64, elapsed time.Duration) error {
	return s.put(perftKey(fen, depth), &PerftRecord{
		FEN:     fen,
		Depth:   depth,
		Nodes:   nodes,
		Elapsed: elapsed,
	})
}

// ClearPerft drops every cached perft result.
func (s *Storage) ClearPerft() error {
	return s.db.DropPrefix([]byte(keyPerftPrefix))
}

package engine

import "unsafe"

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

func (f TTFlag) String() string {
	switch f {
	case TTExact:
		return "exact"
	case TTLowerBound:
		return "lower"
	case TTUpperBound:
		return "upper"
	}
	return "unknown"
}

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key   uint64 // Full 64-bit Zobrist hash for verification
	Score int16  // Score (bounded by flag)
	Depth uint8  // Remaining depth the score was searched to
	Flag  TTFlag // Type of bound
	used  bool
}

// TranspositionTable is a direct-mapped hash table for storing search results.
// It is owned by a single search at a time and does no locking.
type TranspositionTable struct {
	entries []TTEntry
	size    uint64

	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
// The table always holds at least one entry.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB < 0 {
		sizeMB = 0
	}
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	numEntries := uint64(sizeMB) * 1024 * 1024 / entrySize
	if numEntries == 0 {
		numEntries = 1
	}

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
	}
}

func (tt *TranspositionTable) index(hash uint64) uint64 {
	return hash % tt.size
}

// Probe looks up a position in the transposition table. An entry stored
// under a different key in the same slot is reported as a miss.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++

	entry := tt.entries[tt.index(hash)]
	if entry.used && entry.Key == hash {
		tt.hits++
		return entry, true
	}

	return TTEntry{}, false
}

// Store saves a search result. An occupied slot is only overwritten by a
// result searched at least as deep.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag) {
	entry := &tt.entries[tt.index(hash)]
	if entry.used && int(entry.Depth) > depth {
		return
	}

	*entry = TTEntry{
		Key:   hash,
		Score: int16(score),
		Depth: uint8(depth),
		Flag:  flag,
		used:  true,
	}
}

// Clear empties the table and resets its statistics.
func (tt *TranspositionTable) Clear() {
	clear(tt.entries)
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that is used.
func (tt *TranspositionTable) HashFull() int {
	// Sample first 1000 entries
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}

	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].used {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// AdjustScoreFromTT converts a stored mate score, which counts plies from
// the stored node, back to a distance from the root.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT adjusts a score for storage in the transposition table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}

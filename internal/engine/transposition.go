package engine

import (
	"github.com/cespare/xxhash/v2"

	"github.com/hailam/damaplay/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// DefaultTTCapacity is the entry count at which the table is emptied.
const DefaultTTCapacity = 200_000

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key      board.Key  // Full position key for verification
	BestMove board.Move // Best move found
	Score    int        // Score (bounded by flag)
	Depth    int        // Search depth
	Flag     TTFlag     // Type of bound
}

// TranspositionTable caches search results for one search call.
// Entries are addressed by the xxhash digest of the position key; the full
// key is compared on probe so digest collisions read as misses.
type TranspositionTable struct {
	entries  map[uint64]TTEntry
	capacity int

	hits   uint64
	probes uint64
	clears int
}

// NewTranspositionTable creates a table holding at most capacity entries.
func NewTranspositionTable(capacity int) *TranspositionTable {
	if capacity <= 0 {
		capacity = DefaultTTCapacity
	}
	return &TranspositionTable{
		entries:  make(map[uint64]TTEntry),
		capacity: capacity,
	}
}

func digest(key *board.Key) uint64 {
	return xxhash.Sum64(key[:])
}

// Probe looks up a position in the transposition table.
func (tt *TranspositionTable) Probe(key board.Key) (TTEntry, bool) {
	tt.probes++
	entry, ok := tt.entries[digest(&key)]
	if !ok || entry.Key != key {
		return TTEntry{}, false
	}
	tt.hits++
	return entry, true
}

// Store saves a position in the transposition table. When the table is
// full it is cleared before the new entry goes in.
func (tt *TranspositionTable) Store(key board.Key, depth, score int, flag TTFlag, bestMove board.Move) {
	h := digest(&key)
	if _, exists := tt.entries[h]; !exists && len(tt.entries) >= tt.capacity {
		tt.entries = make(map[uint64]TTEntry)
		tt.clears++
	}
	tt.entries[h] = TTEntry{
		Key:      key,
		BestMove: bestMove,
		Score:    score,
		Depth:    depth,
		Flag:     flag,
	}
}

// Clear empties the table and resets its statistics.
func (tt *TranspositionTable) Clear() {
	tt.entries = make(map[uint64]TTEntry)
	tt.hits, tt.probes, tt.clears = 0, 0, 0
}

// Len returns the number of stored entries.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// Clears returns how many times the table overflowed and was emptied.
func (tt *TranspositionTable) Clears() int {
	return tt.clears
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

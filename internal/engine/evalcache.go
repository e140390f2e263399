package engine

import (
	"github.com/hailam/damaplay/internal/board"
)

// evalCacheBits sizes the per-search evaluation cache (1<<evalCacheBits entries).
const evalCacheBits = 14

// EvalEntry stores a cached static evaluation.
type EvalEntry struct {
	Key   uint64
	Score int32
	Valid bool
}

// EvalCache is a direct-mapped cache of static evaluations, addressed by the
// digest of the position key. Colliding positions overwrite each other.
type EvalCache struct {
	entries []EvalEntry
	mask    uint64
	hits    uint64
	probes  uint64
}

// NewEvalCache creates a cache with 1<<bits entries.
func NewEvalCache(bits int) *EvalCache {
	size := 1 << bits
	return &EvalCache{
		entries: make([]EvalEntry, size),
		mask:    uint64(size - 1),
	}
}

// Probe looks up the evaluation stored for key.
func (ec *EvalCache) Probe(key uint64) (int, bool) {
	ec.probes++
	entry := &ec.entries[key&ec.mask]
	if entry.Valid && entry.Key == key {
		ec.hits++
		return int(entry.Score), true
	}
	return 0, false
}

// Store saves an evaluation.
func (ec *EvalCache) Store(key uint64, score int) {
	ec.entries[key&ec.mask] = EvalEntry{Key: key, Score: int32(score), Valid: true}
}

// Clear empties the cache.
func (ec *EvalCache) Clear() {
	clear(ec.entries)
	ec.hits, ec.probes = 0, 0
}

// HitRate returns the fraction of probes that hit.
func (ec *EvalCache) HitRate() float64 {
	if ec.probes == 0 {
		return 0
	}
	return float64(ec.hits) / float64(ec.probes)
}

// evaluate returns the static evaluation of b for side, consulting the cache.
// The chain-capture square does not affect the evaluation, so it is left out
// of the key.
func (s *search) evaluate(b board.Board, side board.Side) int {
	key := b.Key(side, board.NoSquare)
	h := digest(&key)
	if score, ok := s.evals.Probe(h); ok {
		return score
	}
	score := Evaluate(b, side, s.variant, s.weights)
	s.evals.Store(h, score)
	return score
}

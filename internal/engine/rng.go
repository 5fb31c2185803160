package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Source produces deterministic draws keyed by (seed, round, draw). Every
// draw hashes its full key into a fresh math/rand stream, so a draw's value
// never depends on how many draws came before it. Replays with the same
// seed reproduce the same values on any platform.
type Source struct {
	seed int64
}

// New returns a Source for the given fight seed.
func New(seed int64) Source { return Source{seed: seed} }

// keyed derives a PRNG bound to one (round, draw) pair.
func (s Source) keyed(round, draw int) *rand.Rand {
	var buf [8 + 8 + 8 + 11]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(s.seed))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(round))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(draw))
	copy(buf[24:], "arena.fight")
	digest := sha256.Sum256(buf[:])
	derived := int64(binary.LittleEndian.Uint64(digest[0:8]))
	if derived == 0 {
		derived = int64(binary.LittleEndian.Uint64(digest[8:16]))
	}
	if derived == 0 {
		derived = 1
	}
	return rand.New(rand.NewSource(derived))
}

// Intn returns a deterministic value in [0,n) for the given key.
// n must be positive.
func (s Source) Intn(round, draw, n int) int {
	return s.keyed(round, draw).Intn(n)
}

// Range returns a deterministic value in [lo,hi] for the given key.
// Degenerate ranges collapse to lo.
func (s Source) Range(round, draw, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(round, draw, hi-lo+1)
}

// WeightedPick draws one index from weights, each weight being the share of
// the total assigned to its index. Zero weights are never picked. If every
// weight is zero the last index wins, which callers use as the residual
// outcome.
func (s Source) WeightedPick(round, draw int, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return len(weights) - 1
	}
	roll := s.Intn(round, draw, total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}

// Chance reports whether a percentage roll succeeds. pct is clamped to
// [0,100]; 0 never succeeds, 100 always does.
func (s Source) Chance(round, draw, pct int) bool {
	if pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	return s.Intn(round, draw, 100) < pct
}

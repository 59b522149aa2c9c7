// Package ttable implements the shared transposition table: a fixed-size
// bucket array of packed entries with depth-preferred replacement and a
// lockless-read checksum field. Replacement scoring combines depth, age
// and bound-type deltas.
package ttable

import (
	"sync/atomic"

	"github.com/rookfile/chesscore/move"
	"github.com/rookfile/chesscore/zobrist"
)

// Bound records whether a stored score is exact or a cutoff bound.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower // fail-high / beta cutoff
	BoundUpper // fail-low / alpha cutoff
)

// entry is the conceptual, unpacked view of one slot. In the table itself
// it is bit-packed into the two uint64 words of an atomicEntry (16 bytes
// per slot) by pack0/pack1.
type entry struct {
	key   uint32 // truncated zobrist key, used as the lockless-read checksum
	move  move.Move
	score int16
	depth int8
	age   uint8
	bound Bound
}

// Table is a fixed-size, power-of-two-bucketed transposition table. It is
// safe for concurrent use by multiple search workers without a mutex: Probe
// and Store use atomic loads/stores of each bucket's two packed words, so no
// single word is ever torn; a read that pairs words from two different
// Stores is not detected (see atomicEntry).
type Table struct {
	buckets []atomicEntry
	mask    uint64
	age     uint8
}

// atomicEntry packs one slot into two independently-atomic words rather
// than one, since Go has no native 128-bit atomic. The checksum in word0
// only covers word0 itself: a racing Store between a Probe's two loads can
// still hand back a fresh word0 (key, move) paired with a stale word1
// (score, depth, bound) from the entry being replaced. This is a narrower
// window than an unsynchronized read (each word is internally consistent,
// never a torn bit pattern), but it does not fully close the cross-word
// race; callers already re-verify the returned move's legality before
// playing it, which also catches a mismatched score/depth pairing causing
// an obviously wrong cutoff.
type atomicEntry struct {
	word0 atomic.Uint64 // key(32) | move(32)
	word1 atomic.Uint64 // score(16) | depth(8) | age(8) | bound(8)
}

// New allocates a table sized to approximately sizeMB megabytes, rounded
// down to a power of two bucket count.
func New(sizeMB int) *Table {
	if sizeMB < 1 {
		sizeMB = 1
	}
	const bucketBytes = 16 // two uint64 words
	n := (sizeMB * 1024 * 1024) / bucketBytes
	count := 1
	for count*2 <= n {
		count *= 2
	}
	if count < 1024 {
		count = 1024
	}
	return &Table{buckets: make([]atomicEntry, count), mask: uint64(count - 1)}
}

// NewAge bumps the table's generation counter, called once per search
// (engine.Start), so stale entries from previous searches lose replacement
// priority without needing to be cleared.
func (t *Table) NewAge() {
	t.age++
}

func pack0(e entry) uint64 {
	return uint64(e.key) | uint64(e.move)<<32
}

func unpack0(w uint64) (key uint32, m move.Move) {
	return uint32(w), move.Move(w >> 32)
}

func pack1(e entry) uint64 {
	return uint64(uint16(e.score)) | uint64(uint8(e.depth))<<16 | uint64(e.age)<<24 | uint64(e.bound)<<32
}

func unpack1(w uint64) (score int16, depth int8, age uint8, bound Bound) {
	return int16(uint16(w)), int8(uint8(w >> 16)), uint8(w >> 24), Bound(w >> 32)
}

func checksum(key zobrist.Key) uint32 {
	return uint32(key >> 32)
}

func index(t *Table, key zobrist.Key) uint64 {
	return uint64(key) & t.mask
}

// Probe looks up key. found is false if no entry with a matching checksum
// is present (either truly absent, or a different key hashed to the same
// bucket — the 32-bit checksum makes this exceedingly rare but not
// impossible, which is why callers must re-verify the move is legal before
// playing it).
func (t *Table) Probe(key zobrist.Key) (m move.Move, score int16, depth int8, bound Bound, found bool) {
	b := &t.buckets[index(t, key)]
	w0 := b.word0.Load()
	w1 := b.word1.Load()
	k, mv := unpack0(w0)
	if w0 == 0 || k != checksum(key) {
		return move.None, 0, 0, BoundNone, false
	}
	sc, d, _, bd := unpack1(w1)
	return mv, sc, d, bd, true
}

// Store writes a search result into key's bucket. An empty bucket is always
// filled; an occupied one (whatever key it holds) is replaced only if the
// new result is more valuable: an entry from an earlier search is always
// replaced, deeper results replace shallower ones, and at equal depth an
// exact score replaces a bound.
func (t *Table) Store(key zobrist.Key, m move.Move, score int16, depth int8, bound Bound) {
	b := &t.buckets[index(t, key)]
	w0 := b.word0.Load()
	w1 := b.word1.Load()
	_, existingMove := unpack0(w0)
	_, existingDepth, existingAge, existingBound := unpack1(w1)

	if w0 != 0 {
		if !t.shouldReplace(depth, bound, existingDepth, existingBound, existingAge) {
			return
		}
	}
	if m == move.None {
		m = existingMove
	}

	e := entry{key: checksum(key), move: m, score: score, depth: depth, age: t.age, bound: bound}
	b.word0.Store(pack0(e))
	b.word1.Store(pack1(e))
}

func (t *Table) shouldReplace(newDepth int8, newBound Bound, oldDepth int8, oldBound Bound, oldAge uint8) bool {
	if t.age != oldAge {
		return true
	}
	if newDepth > oldDepth {
		return true
	}
	if newDepth == oldDepth && newBound == BoundExact && oldBound != BoundExact {
		return true
	}
	return false
}

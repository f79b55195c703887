package search

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/zobrist"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

const entrySize = 16

const (
	minSizePowerOf2 = 16
	maxSizePowerOf2 = 24
)

// 16 bytes (entrySize)
type TableEntry struct {
	hash  uint64
	score int32
	depth uint16
	flag  uint8
}

func (t TableEntry) valid() bool {
	return t.flag != 0
}

// TranspositionTable caches search values by position. An entry is only
// reused at exactly the depth it was searched to, so a hit returns the
// same value a fresh search would.
type TranspositionTable struct {
	table        []TableEntry
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64
	// collisions counts lookups whose slot held a different position.
	collisions atomic.Uint64

	zobrist *zobrist.Zobrist
}

func (t *TranspositionTable) lookup(zval uint64) TableEntry {
	t.lookups.Add(1)
	idx := zval & t.sizeMask
	if t.table[idx].hash != zval {
		if t.table[idx].valid() {
			t.collisions.Add(1)
		}
		return TableEntry{}
	}
	t.hits.Add(1)
	return t.table[idx]
}

func (t *TranspositionTable) store(zval uint64, tentry TableEntry) {
	idx := zval & t.sizeMask
	tentry.hash = zval
	// just overwrite whatever is there.
	t.table[idx] = tentry
	t.created.Add(1)
}

// Reset sizes the table to a fraction of system memory and empties it.
func (t *TranspositionTable) Reset(fractionOfMemory float64, boardDim int) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	t.sizePowerOf2 = minSizePowerOf2
	if desiredNElems > 1 {
		// biggest power of 2 lower than desired.
		t.sizePowerOf2 = min(max(int(math.Log2(desiredNElems)), minSizePowerOf2), maxSizePowerOf2)
	}

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}

	if t.zobrist == nil || t.zobrist.BoardDim() != boardDim {
		log.Debug().Int("dim", boardDim).Msg("creating-zobrist-hash")
		t.zobrist = &zobrist.Zobrist{}
		t.zobrist.Initialize(boardDim)
	}

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.collisions.Store(0)
}

func (t *TranspositionTable) Zobrist() *zobrist.Zobrist {
	return t.zobrist
}

// Stats returns (stored, lookups, hits, collisions) since the last Reset.
func (t *TranspositionTable) Stats() (uint64, uint64, uint64, uint64) {
	return t.created.Load(), t.lookups.Load(), t.hits.Load(), t.collisions.Load()
}
